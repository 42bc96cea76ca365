package decktool

import (
	"context"
	"fmt"

	"github.com/NeekChaw/mcp-server-okppt/internal/deck"
	"github.com/NeekChaw/mcp-server-okppt/internal/emu"
	"github.com/NeekChaw/mcp-server-okppt/internal/fileutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/logutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/svgutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/toolutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

const insertSVGFuncID spec.FuncID = "github.com/NeekChaw/mcp-server-okppt/decktool/insertsvg.InsertSVG"

var insertSVGTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "01a016b2-4c1d-7a42-9e01-3f52c7a9d210",
	Slug:          "insert_svg",
	Version:       "v1.0.0",
	DisplayName:   "Insert SVG into slide deck",
	Description:   "Insert an SVG image into a PPTX slide at an inch-based position/size. Missing slides and parent directories are created; a raster fallback is embedded for viewers without SVG support.",
	Tags:          []string{"pptx", "svg", "slides"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"svgPath": {
		"type": "string",
		"description": "Path of the SVG image to insert."
	},
	"pptxPath": {
		"type": "string",
		"description": "Path of the target PPTX document. Created (with parent directories) when missing."
	},
	"slideIndex": {
		"type": "integer",
		"description": "1-based target slide. Blank slides are appended when the deck is shorter.",
		"default": 1,
		"minimum": 1
	},
	"leftInches": {
		"type": "number",
		"description": "Left offset in inches.",
		"default": 0
	},
	"topInches": {
		"type": "number",
		"description": "Top offset in inches.",
		"default": 0
	},
	"widthInches": {
		"type": "number",
		"description": "Width in inches. When omitted it is derived from heightInches and the SVG aspect ratio, or from the SVG's native size."
	},
	"heightInches": {
		"type": "number",
		"description": "Height in inches. When omitted it is derived from widthInches and the SVG aspect ratio, or from the SVG's native size."
	},
	"outputPath": {
		"type": "string",
		"description": "Optional save destination. When set the input deck is left untouched."
	}
},
"required": ["svgPath", "pptxPath"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: insertSVGFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

func InsertSVGTool() spec.Tool {
	return toolutil.CloneTool(insertSVGTool)
}

type InsertSVGArgs struct {
	SVGPath      string   `json:"svgPath"`
	PPTXPath     string   `json:"pptxPath"`
	SlideIndex   int      `json:"slideIndex,omitempty"` // default 1
	LeftInches   float64  `json:"leftInches,omitempty"`
	TopInches    float64  `json:"topInches,omitempty"`
	WidthInches  *float64 `json:"widthInches,omitempty"`
	HeightInches *float64 `json:"heightInches,omitempty"`
	OutputPath   string   `json:"outputPath,omitempty"`
}

type InsertSVGOut struct {
	DocumentPath string `json:"documentPath"`
	SlideIndex   int    `json:"slideIndex"`
	SlideCount   int    `json:"slideCount"`

	// Dimensions actually applied, post aspect-ratio resolution.
	WidthInches  float64 `json:"widthInches"`
	HeightInches float64 `json:"heightInches"`
	WidthEMU     int64   `json:"widthEMU"`
	HeightEMU    int64   `json:"heightEMU"`

	Created     bool `json:"created,omitempty"`
	SlidesAdded int  `json:"slidesAdded,omitempty"`
}

// InsertSVG inserts an SVG image into a PPTX slide. See insertSVG for the
// pipeline; failures before save leave the on-disk document untouched.
func InsertSVG(ctx context.Context, args InsertSVGArgs) (*InsertSVGOut, error) {
	return toolutil.WithRecoveryResp(func() (*InsertSVGOut, error) {
		return insertSVG(ctx, args)
	})
}

func insertSVG(ctx context.Context, args InsertSVGArgs) (*InsertSVGOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slideIndex := args.SlideIndex
	if slideIndex == 0 {
		slideIndex = 1
	}
	if slideIndex < 1 {
		return nil, fmt.Errorf("%w: %d", spec.ErrInvalidSlideIndex, slideIndex)
	}

	// Render the raster fallback first: it validates the source exists and is
	// parseable before the deck is opened, so any failure here cannot leave a
	// half-edited document.
	rendered, err := svgutil.Render(args.SVGPath)
	if err != nil {
		return nil, err
	}

	savePath := args.PPTXPath
	if args.OutputPath != "" {
		savePath = args.OutputPath
	}
	if err := fileutil.EnsureParentDir(savePath); err != nil {
		return nil, fmt.Errorf("create parent directory for %s: %w", savePath, err)
	}
	if err := fileutil.EnsureParentDir(args.PPTXPath); err != nil {
		return nil, fmt.Errorf("create parent directory for %s: %w", args.PPTXPath, err)
	}

	d, err := deck.OpenOrCreate(args.PPTXPath)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	slidesAdded := d.EnsureSlideCount(slideIndex)
	rect := resolveRect(args, rendered)

	if err := d.PlaceImage(slideIndex, rendered.PNG, rect); err != nil {
		return nil, err
	}
	if err := d.SaveTo(savePath); err != nil {
		return nil, err
	}

	logutil.InfoContext(ctx, "inserted svg into deck",
		"svg", args.SVGPath, "deck", savePath, "slide", slideIndex, "slidesAdded", slidesAdded)

	return &InsertSVGOut{
		DocumentPath: savePath,
		SlideIndex:   slideIndex,
		SlideCount:   d.SlideCount(),
		WidthInches:  emu.ToInches(rect.Width),
		HeightInches: emu.ToInches(rect.Height),
		WidthEMU:     rect.Width,
		HeightEMU:    rect.Height,
		Created:      d.Created(),
		SlidesAdded:  slidesAdded,
	}, nil
}

// resolveRect turns the inch-based request into an EMU rectangle. With only
// one of width/height supplied, the other follows the SVG's intrinsic aspect
// ratio; with neither, the SVG's native pixel size is used.
func resolveRect(args InsertSVGArgs, rendered *svgutil.Rendered) deck.Rect {
	rect := deck.Rect{
		Left: emu.FromInches(args.LeftInches),
		Top:  emu.FromInches(args.TopInches),
	}

	ratio := rendered.AspectRatio()
	switch {
	case args.WidthInches != nil && args.HeightInches != nil:
		rect.Width = emu.FromInches(*args.WidthInches)
		rect.Height = emu.FromInches(*args.HeightInches)
	case args.WidthInches != nil:
		rect.Width = emu.FromInches(*args.WidthInches)
		rect.Height = emu.FromInches(*args.WidthInches / ratio)
	case args.HeightInches != nil:
		rect.Height = emu.FromInches(*args.HeightInches)
		rect.Width = emu.FromInches(*args.HeightInches * ratio)
	default:
		rect.Width = emu.FromPixels(rendered.IntrinsicWidth)
		rect.Height = emu.FromPixels(rendered.IntrinsicHeight)
	}
	return rect
}
