// Package attachment converts a user-selected file into the byte payload the
// submission pipeline transports. The bytes are an exact copy of the file
// content; nothing is compressed or reinterpreted.
package attachment

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Payload is the encoded attachment: raw bytes plus the metadata the remote
// service needs to store the document.
type Payload struct {
	Bytes    []byte
	Filename string
	MIMEType string
}

// Encode reads the file at path and returns its payload. An empty path means
// no document was selected and yields (nil, nil); the submission then
// proceeds without a document reference. An unreadable file is the only
// failure mode.
func Encode(path string) (*Payload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: read %s: %w", path, err)
	}
	return &Payload{
		Bytes:    data,
		Filename: filepath.Base(path),
		MIMEType: mediaType(path, data),
	}, nil
}

// mediaType resolves the declared type from the file extension and falls back
// to content sniffing when the extension is unknown.
func mediaType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return byExt
	}
	return mimetype.Detect(data).String()
}
