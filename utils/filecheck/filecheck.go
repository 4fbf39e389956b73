package filecheck

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize is the attachment size ceiling (5 MB)
const MaxUploadSize = 5 * 1024 * 1024

// allowedTypes maps permitted file extensions to the mime type the
// attachment record stores
var allowedTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".txt":  "text/plain",
}

// CheckedFile is a validated upload ready to be stored
type CheckedFile struct {
	Filename string
	MimeType string
	Size     int64
	Content  []byte
}

// Result reports the outcome of upload validation. A non-empty Error
// means the upload was rejected (a client problem, not a server one).
type Result struct {
	Valid bool
	Error string
	File  *CheckedFile
}

// ValidateUpload checks an uploaded file against the attachment
// whitelist and size ceiling, reads its content, and sniffs PDFs to
// make sure the bytes match the extension.
func ValidateUpload(file *multipart.FileHeader) (*Result, error) {
	result := &Result{}

	// 1. Validate file size
	if file.Size > MaxUploadSize {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", MaxUploadSize/(1024*1024))
		return result, nil
	}

	// 2. Validate file extension against the whitelist
	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimeType, ok := allowedTypes[ext]
	if !ok {
		result.Error = fmt.Sprintf("File type %q is not allowed", ext)
		return result, nil
	}

	// 3. Read file content
	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fileContent.Close()

	content, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// 4. For PDFs, verify the content actually parses as a PDF
	if ext == ".pdf" {
		if _, err := pdf.NewReader(bytes.NewReader(content), int64(len(content))); err != nil {
			result.Error = "File has a .pdf extension but is not a valid PDF"
			return result, nil
		}
	}

	result.Valid = true
	result.File = &CheckedFile{
		Filename: file.Filename,
		MimeType: mimeType,
		Size:     int64(len(content)),
		Content:  content,
	}
	return result, nil
}
