package statement

import (
	"fmt"
	"os"
	"os/exec"
)

// TextExtractor defines the interface for extracting text from PDF files.
// The indirection exists so the parser can be exercised in tests without a
// PDF toolchain installed.
type TextExtractor interface {
	// ExtractText extracts text content from the PDF at the given path.
	ExtractText(pdfPath string) (string, error)
}

// PdftotextExtractor implements TextExtractor using the pdftotext
// command-line tool. This is the production implementation and requires
// pdftotext (poppler-utils) to be installed.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a new PdftotextExtractor instance.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractText extracts text from a PDF file using pdftotext. The -layout
// flag keeps columns aligned so transaction lines survive extraction.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	tempFile, err := os.CreateTemp("", "statement-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary text file: %w", err)
	}
	tempPath := tempFile.Name()
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary text file: %w", err)
	}
	defer func() {
		_ = os.Remove(tempPath)
	}()

	cmd := exec.Command("pdftotext", "-layout", pdfPath, tempPath)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext on %s: %w", pdfPath, err)
	}

	output, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}

	return string(output), nil
}

// MockExtractor implements TextExtractor for testing purposes. It returns
// predefined text instead of extracting from a PDF file.
type MockExtractor struct {
	Text string
	Err  error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(pdfPath string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Text, nil
}
