package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type Document struct {
	ID         string
	FileName   string
	FileType   FileType
	StorageRef string
	UploadedBy string
	UploadedAt time.Time
	Priority   Priority
}

// SearchFields returns the strings a query is matched against:
// file name and uploader.
func (d Document) SearchFields() []string {
	return []string{d.FileName, d.UploadedBy}
}

func (d Document) CreatedTime() time.Time { return d.UploadedAt }

func (d Document) PriorityValue() Priority { return d.Priority }

// DetectFileType derives the document type from the file extension.
// PDFs map to pdf, everything else to word.
func DetectFileType(fileName string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "pdf" {
		return FilePDF
	}
	return FileWord
}
