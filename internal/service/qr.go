// File: internal/service/qr.go
package service

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var qrEncode = qrcode.Encode

// QRCodeDataURI renders content as a QR PNG and returns it as a data URI
// suitable for an <img> src attribute.
func QRCodeDataURI(content string) (string, error) {
	png, err := qrEncode(content, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("QRCodeDataURI: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
