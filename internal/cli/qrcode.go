package cli

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// RenderQrCode draws `content` as a QR code using half-block
// characters so that two rows of modules fit in one line of text
func RenderQrCode(content []byte) (string, error) {
	qr, err := qrcode.New(string(content), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create qr code: %w", err)
	}
	var b strings.Builder
	bitmap := qr.Bitmap()
	for y := 0; y < len(bitmap); y += 2 {
		for x := 0; x < len(bitmap[y]); x++ {
			top := bitmap[y][x]
			bottom := false
			if y+1 < len(bitmap) {
				bottom = bitmap[y+1][x]
			}
			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// WriteQrPng writes `content` as a `size` pixel wide PNG at `path`
func WriteQrPng(path string, content []byte, size int) error {
	if err := qrcode.WriteFile(string(content), qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write qr code to path[%s]: %w", path, err)
	}
	return nil
}
