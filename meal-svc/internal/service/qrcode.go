package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(date string) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the menu page of one day.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(date string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/?date=" + date
}

func (g DefaultQRGenerator) Generate(date string) ([]byte, error) {
	return qrcode.Encode(g.Link(date), qrcode.Medium, 256)
}
