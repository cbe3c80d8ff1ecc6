package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// DataURL renders the given QRIS payload as a PNG data URL, ready to embed
// in a JSON response. Highest error-correction level, matching what payment
// apps expect from printed QRIS codes.
func DataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Highest, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
