package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	uri, err := DataURI("http://localhost:3000/customer", 0)
	if err != nil {
		t.Fatalf("DataURI failed: %v", err)
	}
	if !strings.HasPrefix(uri, dataURIPrefix) {
		t.Fatalf("missing data URI prefix: %.40s", uri)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataURIPrefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultSize, DefaultSize)
	}
}

func TestDataURIEmptyContent(t *testing.T) {
	if _, err := DataURI("", 128); err == nil {
		t.Error("expected error for empty content")
	}
}
