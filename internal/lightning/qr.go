package lightning

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// InvoiceQRCode renders an encoded invoice as a PNG data URL suitable
// for an <img> tag.
func InvoiceQRCode(encodedInvoice string) (string, error) {
	png, err := qrcode.Encode(encodedInvoice, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode invoice qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
