// Package qrcode renders URLs as PNG QR codes encoded in data URIs.
package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the image width and height in pixels.
const DefaultSize = 256

const dataURIPrefix = "data:image/png;base64,"

// DataURI encodes content as a QR code PNG of size×size pixels and returns it
// as a data URI suitable for an <img src>.
func DataURI(content string, size int) (string, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
