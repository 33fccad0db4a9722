package export

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

const (
	logoBoxWidth  = 200
	logoBoxHeight = 80
)

// Logo is a processed brand image, re-encoded as PNG and scaled to fit the
// standard header box without enlargement.
type Logo struct {
	PNG    []byte
	Width  int
	Height int
}

// LoadLogo reads, scales, and re-encodes the image at path.
func LoadLogo(path string) (*Logo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StrategyError{Strategy: "logo", Cause: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &StrategyError{Strategy: "logo", Cause: err}
	}

	bounds := src.Bounds()
	w, h := fitBox(bounds.Dx(), bounds.Dy(), logoBoxWidth, logoBoxHeight)

	scaled := src
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		scaled = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, &StrategyError{Strategy: "logo", Cause: err}
	}
	return &Logo{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

// fitBox scales (w, h) proportionally to fit within (maxW, maxH) without
// enlargement.
func fitBox(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	sw := int(float64(w) * scale)
	sh := int(float64(h) * scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return sw, sh
}
