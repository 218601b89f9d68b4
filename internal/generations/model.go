package generations

import (
	"errors"
	"time"
)

// ErrNotFound indicates no generation exists for the requested id.
var ErrNotFound = errors.New("generation not found")

// Generation is the metadata of one stored resume artifact.
type Generation struct {
	ID          string    `json:"id"`
	StorageKey  string    `json:"-"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Checksum    string    `json:"checksum"`
	ColorScheme string    `json:"colorScheme"`
	FontSize    string    `json:"fontSize"`
	FontFamily  string    `json:"fontFamily"`
	Enhanced    bool      `json:"enhanced"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StorageKey returns the object key holding the artifact for id.
func StorageKey(id string) string {
	return "generations/" + id + "/resume.docx"
}
