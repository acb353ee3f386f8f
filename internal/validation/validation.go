// Package validation checks user-supplied paths and file names, and sniffs
// file types from magic bytes.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// ValidateFilename checks that a filename can be used as an archive entry
// basename. It rejects path separators, control characters and names that
// look like flags.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}

	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}

	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}

	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}

	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidFilename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}

	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}

	return nil
}

// ValidatePath checks length limits and rejects null bytes and control
// characters. It does not require the path to exist.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// FileType represents a validated file type.
type FileType string

const (
	FileTypeZip  FileType = "zip"
	FileTypePNG  FileType = "png"
	FileTypeJPEG FileType = "jpeg"
	FileTypeGIF  FileType = "gif"
	FileTypeSVG  FileType = "svg"
	FileTypeXML  FileType = "xml"
	FileTypeText FileType = "text"

	FileTypeUnknown FileType = "unknown"
)

// magicBytes defines magic byte signatures for file type detection.
var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{FileTypePNG, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}},
	{FileTypeJPEG, []byte{0xff, 0xd8, 0xff}},
	{FileTypeGIF, []byte("GIF8")},
}

// ValidateFileType checks that the content read from reader matches the
// type suggested by filename's extension and returns the detected type.
// Content whose type cannot be sniffed is accepted as the expected type.
func ValidateFileType(reader io.Reader, filename string) (FileType, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(reader, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	detectedType := detectFileTypeFromMagic(buf)
	expectedType := detectFileTypeFromExtension(filename)

	if detectedType == expectedType {
		return detectedType, nil
	}

	// markup formats have no magic bytes
	if detectedType == FileTypeUnknown {
		switch expectedType {
		case FileTypeSVG, FileTypeXML, FileTypeText:
			if !isLikelyText(buf) && len(buf) > 0 {
				return FileTypeUnknown, fmt.Errorf("file type mismatch: extension suggests %s but content is binary", expectedType)
			}
		}
		return expectedType, nil
	}

	if expectedType != FileTypeUnknown {
		return FileTypeUnknown, fmt.Errorf("file type mismatch: extension suggests %s but content is %s", expectedType, detectedType)
	}
	return detectedType, nil
}

// detectFileTypeFromMagic detects file type from magic bytes.
func detectFileTypeFromMagic(buf []byte) FileType {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType
		}
	}
	return FileTypeUnknown
}

// detectFileTypeFromExtension determines expected file type from filename extension.
func detectFileTypeFromExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return FileTypeZip
	case ".png":
		return FileTypePNG
	case ".jpg", ".jpeg":
		return FileTypeJPEG
	case ".gif":
		return FileTypeGIF
	case ".svg":
		return FileTypeSVG
	case ".xml", ".musicxml":
		return FileTypeXML
	case ".txt", ".md":
		return FileTypeText
	default:
		return FileTypeUnknown
	}
}

// isLikelyText reports whether more than 95% of buf is printable ASCII or
// whitespace. UTF-8 multibyte sequences count as neither.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
	}

	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
