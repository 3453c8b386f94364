package attachment

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncode_ReadsBytesVerbatim(t *testing.T) {
	content := []byte("%PDF-1.4 scan of a passport")
	path := filepath.Join(t.TempDir(), "passport.pdf")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	payload, err := Encode(path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(payload.Bytes, content) {
		t.Fatalf("payload bytes differ from file content")
	}
	if payload.Filename != "passport.pdf" {
		t.Fatalf("filename: got %q", payload.Filename)
	}
	if !strings.HasPrefix(payload.MIMEType, "application/pdf") {
		t.Fatalf("mime type: got %q", payload.MIMEType)
	}
}

func TestEncode_SniffsContentWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	payload, err := Encode(path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if payload.MIMEType != "image/png" {
		t.Fatalf("mime type: got %q, want image/png", payload.MIMEType)
	}
}

func TestEncode_EmptyPathMeansNoDocument(t *testing.T) {
	payload, err := Encode("")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload, got %+v", payload)
	}
}

func TestEncode_UnreadableFile(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "gone.pdf"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "attachment: read") {
		t.Fatalf("error lacks package context: %v", err)
	}
}
