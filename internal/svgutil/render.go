// Package svgutil rasterizes SVG markup into PNG via oksvg/rasterx.
package svgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/NeekChaw/mcp-server-okppt/spec"
)

// DefaultSizePx is used for both dimensions when the SVG declares neither
// width/height attributes nor a usable viewBox.
const DefaultSizePx = 300

// Rendered is the raster form of one SVG input.
type Rendered struct {
	// PNG holds the encoded raster bytes.
	PNG []byte

	// WidthPx/HeightPx are the raster dimensions actually produced.
	WidthPx  int
	HeightPx int

	// IntrinsicWidth/IntrinsicHeight are the SVG's declared dimensions in
	// device units (attributes first, viewBox as fallback, DefaultSizePx when
	// neither is present).
	IntrinsicWidth  float64
	IntrinsicHeight float64
}

// AspectRatio returns width/height of the declared dimensions.
func (r *Rendered) AspectRatio() float64 {
	if r.IntrinsicHeight == 0 {
		return 1
	}
	return r.IntrinsicWidth / r.IntrinsicHeight
}

// Render reads the SVG file at path and rasterizes it.
func Render(path string) (*Rendered, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", spec.ErrFileNotFound, path)
		}
		return nil, err
	}
	return RenderBytes(data)
}

// RenderBytes rasterizes SVG markup into a PNG at the SVG's intrinsic size.
// Rendering is deterministic: identical input yields identical bytes.
// Parser rejections surface as spec.ErrUnsupportedVectorFeature with the
// parser's detail preserved.
func RenderBytes(data []byte) (*Rendered, error) {
	// The parser treats a stream with no XML elements as an empty document
	// rather than an error, so require the root element up front.
	if !strings.Contains(strings.ToLower(string(data)), "<svg") {
		return nil, fmt.Errorf("%w: missing svg root element", spec.ErrUnsupportedVectorFeature)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", spec.ErrUnsupportedVectorFeature, err)
	}

	w, h := intrinsicSize(data, icon)

	widthPx := int(math.Round(w))
	heightPx := int(math.Round(h))
	if widthPx < 1 {
		widthPx = 1
	}
	if heightPx < 1 {
		heightPx = 1
	}

	icon.SetTarget(0, 0, float64(widthPx), float64(heightPx))

	rgba := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	scanner := rasterx.NewScannerGV(widthPx, heightPx, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(widthPx, heightPx, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}

	return &Rendered{
		PNG:             buf.Bytes(),
		WidthPx:         widthPx,
		HeightPx:        heightPx,
		IntrinsicWidth:  w,
		IntrinsicHeight: h,
	}, nil
}

// intrinsicSize resolves the SVG's declared dimensions: width/height
// attributes first, then the viewBox, then the documented default.
func intrinsicSize(data []byte, icon *oksvg.SvgIcon) (w, h float64) {
	if aw, ah, ok := attributeSize(string(data)); ok {
		return aw, ah
	}
	if icon.ViewBox.W > 0 && icon.ViewBox.H > 0 {
		return icon.ViewBox.W, icon.ViewBox.H
	}
	return DefaultSizePx, DefaultSizePx
}
