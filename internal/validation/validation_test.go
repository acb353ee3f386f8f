package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantError error
	}{
		{"valid simple filename", "cell.png", nil},
		{"valid filename with spaces", "my plot.png", nil},
		{"valid music rendering", "music_0123456789abcdef0123456789abcdef.svg", nil},
		{"empty filename", "", ErrInvalidFilename},
		{"dot filename", ".", ErrInvalidFilename},
		{"dotdot filename", "..", ErrInvalidFilename},
		{"filename with slash", "dir/file.png", ErrInvalidFilename},
		{"filename with backslash", "dir\\file.png", ErrInvalidFilename},
		{"filename with null byte", "file\x00.png", ErrInvalidFilename},
		{"filename with control character", "file\n.png", ErrInvalidFilename},
		{"filename starting with hyphen", "-file.png", ErrInvalidFilename},
		{"too long filename", strings.Repeat("a", 256), ErrFilenameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("ValidateFilename() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateFilename() unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{"valid relative path", "quiz.md", nil},
		{"valid absolute path", "/tmp/quiz.md", nil},
		{"valid parent reference", "../shared/plot.png", nil},
		{"empty path", "", ErrEmptyPath},
		{"path with null byte", "quiz\x00.md", ErrInvalidCharacter},
		{"path with control character", "dir/quiz\n.md", ErrInvalidCharacter},
		{"very long path", strings.Repeat("a/", 2048) + "quiz.md", ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidatePath() unexpected error: %v", err)
			}
		})
	}
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		content      []byte
		wantFileType FileType
		wantError    bool
	}{
		{"zip archive", "quiz.zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14}, FileTypeZip, false},
		{"png image", "plot.png", pngHeader, FileTypePNG, false},
		{"jpeg image", "photo.JPG", []byte{0xff, 0xd8, 0xff, 0xe0}, FileTypeJPEG, false},
		{"gif image", "anim.gif", []byte("GIF89a"), FileTypeGIF, false},
		{"svg markup", "music_x.svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"), FileTypeSVG, false},
		{"musicxml markup", "score.musicxml", []byte("<?xml version=\"1.0\"?><score-partwise/>"), FileTypeXML, false},
		{"markdown source", "quiz.md", []byte("---\ntitle: x\n---\n"), FileTypeText, false},
		{"unsniffable image accepted", "plot.png", []byte("not really"), FileTypePNG, false},
		{"empty svg accepted", "empty.svg", nil, FileTypeSVG, false},
		{"unknown extension with magic", "blob.bin", pngHeader, FileTypePNG, false},
		{"unknown everything", "blob.bin", []byte{0x01, 0x02}, FileTypeUnknown, false},
		{"zip named png", "plot.png", []byte{0x50, 0x4b, 0x03, 0x04}, FileTypeUnknown, true},
		{"png named zip", "quiz.zip", pngHeader, FileTypeUnknown, true},
		{"binary svg", "music_x.svg", []byte{0x00, 0x01, 0x02, 0x03}, FileTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFileType(bytes.NewReader(tt.content), tt.filename)
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateFileType() error = %v, wantError %v", err, tt.wantError)
			}
			if got != tt.wantFileType {
				t.Errorf("ValidateFileType() = %v, want %v", got, tt.wantFileType)
			}
		})
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e errorReader) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read error")
}

func TestValidateFileType_ReadError(t *testing.T) {
	_, err := ValidateFileType(errorReader{}, "plot.png")
	if err == nil || !strings.Contains(err.Error(), "failed to read file header") {
		t.Errorf("ValidateFileType() error = %v, want error about reading file header", err)
	}
}

func TestDetectFileTypeFromExtension(t *testing.T) {
	tests := map[string]FileType{
		"quiz.zip":       FileTypeZip,
		"a.PNG":          FileTypePNG,
		"a.jpeg":         FileTypeJPEG,
		"a.jpg":          FileTypeJPEG,
		"a.gif":          FileTypeGIF,
		"music_1.svg":    FileTypeSVG,
		"score.musicxml": FileTypeXML,
		"notes.txt":      FileTypeText,
		"quiz.md":        FileTypeText,
		"noext":          FileTypeUnknown,
		"archive.tar.xz": FileTypeUnknown,
	}
	for name, want := range tests {
		if got := detectFileTypeFromExtension(name); got != want {
			t.Errorf("detectFileTypeFromExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsLikelyText(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"plain ascii text", []byte("This is plain ASCII text."), true},
		{"text with newlines", []byte("Line 1\nLine 2\nLine 3"), true},
		{"text with carriage returns", []byte("Windows\r\nLine\r\nEndings"), true},
		{"xml content", []byte("<?xml version=\"1.0\"?>\n<root></root>"), true},
		{"utf-8 text", []byte("Hello 世界 🌍"), true},
		{"binary with null bytes", []byte{0x00, 0x01, 0x02, 0x03}, false},
		{"binary with control characters", []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, false},
		{"empty buffer", []byte{}, false},
		{"above threshold", append([]byte(strings.Repeat("a", 96)), 0x01, 0x02, 0x03, 0x04), true},
		{"below threshold", append([]byte(strings.Repeat("a", 94)), 0x01, 0x02, 0x03, 0x04, 0x05, 0x06), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLikelyText(tt.content); got != tt.want {
				t.Errorf("isLikelyText() = %v, want %v", got, tt.want)
			}
		})
	}
}
