// Package deck wraps the OOXML presentation library behind the small surface
// the insertion pipeline needs: open-or-create, slide auto-extension, picture
// placement, save. The zip container and slide manifest are never touched
// directly; all mutation goes through the library.
package deck

import (
	"errors"
	"fmt"
	"os"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"

	"github.com/NeekChaw/mcp-server-okppt/internal/emu"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

// New decks are created at 16:9, matching the upstream default.
const (
	DefaultWidthInches  = 16
	DefaultHeightInches = 9
)

// Rect is a placement rectangle in EMU.
type Rect struct {
	Left   int64
	Top    int64
	Width  int64
	Height int64
}

// Deck is the exclusive in-process handle for one on-disk presentation.
// Mutations are committed only by SaveTo; discarding the handle without
// saving leaves the file untouched.
type Deck struct {
	ppt     *presentation.Presentation
	path    string
	created bool
}

// Open opens an existing presentation file.
func Open(path string) (*Deck, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", spec.ErrFileNotFound, path)
		}
		return nil, err
	}
	ppt, err := presentation.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presentation %s: %w", path, err)
	}
	return &Deck{ppt: ppt, path: path}, nil
}

// OpenOrCreate opens path if it exists, otherwise returns a new empty
// in-memory deck at the default page size. Creation touches the disk only
// at save time.
func OpenOrCreate(path string) (*Deck, error) {
	if _, err := os.Stat(path); err == nil {
		return Open(path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	ppt := presentation.New()
	d := &Deck{ppt: ppt, path: path, created: true}
	d.setPageSize(emu.FromInches(DefaultWidthInches), emu.FromInches(DefaultHeightInches))
	return d, nil
}

// Created reports whether the deck was synthesized rather than opened.
func (d *Deck) Created() bool { return d.created }

// Path returns the path the deck was opened from or will be created at.
func (d *Deck) Path() string { return d.path }

// SlideCount returns the number of slides currently in the deck.
func (d *Deck) SlideCount() int { return len(d.ppt.Slides()) }

// EnsureSlideCount appends blank slides (library default layout) until the
// deck holds at least n slides, and returns the number appended. Slides are
// only ever appended, never removed.
func (d *Deck) EnsureSlideCount(n int) int {
	added := 0
	for d.SlideCount() < n {
		d.ppt.AddSlide()
		added++
	}
	return added
}

// PlaceImage places the PNG on the 1-based slide at rect. The slide must
// already exist; callers run EnsureSlideCount first.
func (d *Deck) PlaceImage(slideIndex int, pngData []byte, rect Rect) error {
	slides := d.ppt.Slides()
	if slideIndex < 1 || slideIndex > len(slides) {
		return fmt.Errorf("%w: slide %d of %d", spec.ErrInvalidSlideIndex, slideIndex, len(slides))
	}
	slide := slides[slideIndex-1]

	img, err := common.ImageFromBytes(pngData)
	if err != nil {
		return fmt.Errorf("decode raster image: %w", err)
	}
	iref, err := d.ppt.AddImage(img)
	if err != nil {
		return fmt.Errorf("register image part: %w", err)
	}

	pic := slide.AddImage(iref)
	setTransform(pic.Properties().X(), rect)
	return nil
}

// SaveTo flushes all mutations to path, overwriting previous contents.
func (d *Deck) SaveTo(path string) error {
	if err := d.ppt.SaveToFile(path); err != nil {
		return fmt.Errorf("%w: %s: %v", spec.ErrSaveFailed, path, err)
	}
	return nil
}

// Close releases the handle. Unsaved mutations are discarded.
func (d *Deck) Close() {
	d.ppt.Close()
}

// SlideCount opens path read-only and reports its slide count.
func SlideCount(path string) (int, error) {
	d, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer d.Close()
	return d.SlideCount(), nil
}

func (d *Deck) setPageSize(cx, cy int64) {
	sldSz := d.ppt.X().SldSz
	if sldSz == nil {
		return
	}
	sldSz.CxAttr = int32(cx)
	sldSz.CyAttr = int32(cy)
}

// setTransform writes the placement rectangle into the picture's shape
// properties as EMU offsets and extents.
func setTransform(spPr *dml.CT_ShapeProperties, rect Rect) {
	if spPr.Xfrm == nil {
		spPr.Xfrm = dml.NewCT_Transform2D()
	}
	xfrm := spPr.Xfrm

	xfrm.Off = dml.NewCT_Point2D()
	xfrm.Off.XAttr = dml.ST_Coordinate{ST_CoordinateUnqualified: unioffice.Int64(rect.Left)}
	xfrm.Off.YAttr = dml.ST_Coordinate{ST_CoordinateUnqualified: unioffice.Int64(rect.Top)}

	xfrm.Ext = dml.NewCT_PositiveSize2D()
	xfrm.Ext.CxAttr = rect.Width
	xfrm.Ext.CyAttr = rect.Height
}
