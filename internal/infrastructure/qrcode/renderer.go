// Package qrcode renders payment intent URIs as PNG data URLs.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
)

const (
	// DefaultMargin is the quiet zone around the code, in modules.
	DefaultMargin = 1
	// DefaultScale is the size of one module, in pixels.
	DefaultScale = 6

	dataURLPrefix = "data:image/png;base64,"
)

// Renderer encodes text as a QR code with medium error correction.
type Renderer struct {
	margin int
	scale  int
}

// NewRenderer creates a renderer with the default margin and scale.
func NewRenderer() *Renderer {
	return &Renderer{
		margin: DefaultMargin,
		scale:  DefaultScale,
	}
}

// RenderPNG returns the PNG encoding of content.
func (r *Renderer) RenderPNG(content string) ([]byte, error) {
	// byte mode accepts any content, so encoding only fails on capacity
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrIntentTooLarge, err)
	}

	modules := code.Bounds().Dx()
	scaled, err := barcode.Scale(code, modules*r.scale, modules*r.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to scale qr code: %w", err)
	}

	size := (modules + 2*r.margin) * r.scale
	offset := r.margin * r.scale
	canvas := image.NewGray(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas,
		image.Rect(offset, offset, offset+modules*r.scale, offset+modules*r.scale),
		scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDataURL returns content as a base64 PNG data URL.
func (r *Renderer) RenderDataURL(content string) (string, error) {
	data, err := r.RenderPNG(content)
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}
