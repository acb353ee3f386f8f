package errors

import "fmt"

// WarningKind classifies a recovered, non-fatal problem.
type WarningKind string

const (
	WarnAccessibility       WarningKind = "accessibility"
	WarnRenderFallback      WarningKind = "render_fallback"
	WarnMissingResource     WarningKind = "missing_resource"
	WarnRendererUnavailable WarningKind = "renderer_unavailable"
	WarnDuplicateResource   WarningKind = "duplicate_resource"
)

// Warning is a diagnostic that did not stop the conversion.
type Warning struct {
	Kind    WarningKind
	Message string
	Err     error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Kind, w.Message, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
