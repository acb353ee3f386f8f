package qti

import (
	"github.com/FocuswithJustin/quizpack/core/xml"
)

// Package entry names and namespaces.
const (
	ManifestFile   = "imsmanifest.xml"
	AssessmentFile = "assessment.xml"

	ManifestNamespace   = "http://www.imsglobal.org/xsd/imscp_v1p1"
	AssessmentNamespace = "http://www.imsglobal.org/xsd/imsqti_v2p1"

	// ResourceType marks the manifest resource as a QTI 2.1 test.
	ResourceType = "imsqti_test_xmlv2p1"
)

// BuildManifest returns the content package manifest listing the
// assessment document followed by every resource.
func BuildManifest(resources []Resource) *xml.Document {
	doc := xml.NewDocument()
	manifest := doc.SetRoot("manifest",
		"identifier", "manifest",
		"xmlns", ManifestNamespace,
	)

	metadata := xml.AppendElement(manifest, "metadata")
	xml.AppendText(xml.AppendElement(metadata, "schema"), "IMS Content")
	xml.AppendText(xml.AppendElement(metadata, "schemaversion"), "1.1")

	xml.AppendElement(manifest, "organizations")

	list := xml.AppendElement(manifest, "resources")
	resource := xml.AppendElement(list, "resource",
		"identifier", "assessment",
		"type", ResourceType,
		"href", AssessmentFile,
	)
	xml.AppendElement(resource, "file", "href", AssessmentFile)
	for _, r := range resources {
		xml.AppendElement(resource, "file", "href", r.ArchiveName())
	}
	return doc
}
