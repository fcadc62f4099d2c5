package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ContactQR renders a PNG QR code that dials phone when scanned.
func ContactQR(phone string, size int) ([]byte, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode("tel:"+phone, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}
