package decktool

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/NeekChaw/mcp-server-okppt/internal/fileutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/logutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/toolutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

const batchInsertSVGsFuncID spec.FuncID = "github.com/NeekChaw/mcp-server-okppt/decktool/batchinsert.BatchInsertSVGs"

var batchInsertSVGsTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "01a016b2-4c1d-7a42-9e01-3f52c7a9d211",
	Slug:          "batch_insert_svgs",
	Version:       "v1.0.0",
	DisplayName:   "Batch insert SVGs into slide deck",
	Description:   "Insert every SVG in a directory into consecutive slides of a PPTX document, one slide per file in filename order. Per-file failures are recorded and do not abort the batch.",
	Tags:          []string{"pptx", "svg", "slides", "batch"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"svgDir": {
		"type": "string",
		"description": "Directory holding the SVG files (non-recursive)."
	},
	"pptxPath": {
		"type": "string",
		"description": "Path of the target PPTX document. Created when missing."
	},
	"startSlideIndex": {
		"type": "integer",
		"description": "1-based slide for the first file; the i-th file goes to startSlideIndex+i.",
		"default": 1,
		"minimum": 1
	},
	"leftInches": {
		"type": "number",
		"description": "Shared left offset in inches.",
		"default": 0
	},
	"topInches": {
		"type": "number",
		"description": "Shared top offset in inches.",
		"default": 0
	},
	"widthInches": {
		"type": "number",
		"description": "Shared width in inches; omitted dimensions follow each SVG's aspect ratio."
	},
	"heightInches": {
		"type": "number",
		"description": "Shared height in inches; omitted dimensions follow each SVG's aspect ratio."
	}
},
"required": ["svgDir", "pptxPath"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: batchInsertSVGsFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

func BatchInsertSVGsTool() spec.Tool {
	return toolutil.CloneTool(batchInsertSVGsTool)
}

type BatchInsertSVGsArgs struct {
	SVGDir          string   `json:"svgDir"`
	PPTXPath        string   `json:"pptxPath"`
	StartSlideIndex int      `json:"startSlideIndex,omitempty"` // default 1
	LeftInches      float64  `json:"leftInches,omitempty"`
	TopInches       float64  `json:"topInches,omitempty"`
	WidthInches     *float64 `json:"widthInches,omitempty"`
	HeightInches    *float64 `json:"heightInches,omitempty"`
}

// BatchFileResult is the outcome for one input file, in processing order.
type BatchFileResult struct {
	File       string `json:"file"`
	Success    bool   `json:"success"`
	SlideIndex int    `json:"slideIndex,omitempty"`
	Error      string `json:"error,omitempty"`
}

type BatchInsertSVGsOut struct {
	DocumentPath string            `json:"documentPath"`
	Results      []BatchFileResult `json:"results"`
	Succeeded    int               `json:"succeeded"`
	Failed       int               `json:"failed"`
}

// BatchInsertSVGs inserts every *.svg in SVGDir into consecutive slides.
// Files are processed strictly sequentially in lexicographic filename order;
// a failing file is recorded and the batch continues. Earlier successes stay
// committed to disk — there is no cross-file transactionality. Once started
// the batch always returns the full per-file result list, including after
// context cancellation.
func BatchInsertSVGs(ctx context.Context, args BatchInsertSVGsArgs) (*BatchInsertSVGsOut, error) {
	return toolutil.WithRecoveryResp(func() (*BatchInsertSVGsOut, error) {
		return batchInsertSVGs(ctx, args)
	})
}

func batchInsertSVGs(ctx context.Context, args BatchInsertSVGsArgs) (*BatchInsertSVGsOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := args.StartSlideIndex
	if start == 0 {
		start = 1
	}
	if start < 1 {
		return nil, fmt.Errorf("%w: %d", spec.ErrInvalidSlideIndex, start)
	}

	files, err := fileutil.ListFilesWithExtension(args.SVGDir, ".svg")
	if err != nil {
		return nil, err
	}

	out := &BatchInsertSVGsOut{
		DocumentPath: args.PPTXPath,
		Results:      make([]BatchFileResult, 0, len(files)),
	}

	// The loop always runs to completion so no collected result is ever
	// discarded. Context cancellation fails each remaining insert up front
	// and is recorded per file like any other failure.
	for i, name := range files {
		slideIndex := start + i
		_, err := insertSVG(ctx, InsertSVGArgs{
			SVGPath:      filepath.Join(args.SVGDir, name),
			PPTXPath:     args.PPTXPath,
			SlideIndex:   slideIndex,
			LeftInches:   args.LeftInches,
			TopInches:    args.TopInches,
			WidthInches:  args.WidthInches,
			HeightInches: args.HeightInches,
		})
		if err != nil {
			logutil.WarnContext(ctx, "batch insert: file failed",
				"file", name, "slide", slideIndex, "err", err)
			out.Results = append(out.Results, BatchFileResult{
				File:  name,
				Error: err.Error(),
			})
			out.Failed++
			continue
		}
		out.Results = append(out.Results, BatchFileResult{
			File:       name,
			Success:    true,
			SlideIndex: slideIndex,
		})
		out.Succeeded++
	}

	return out, nil
}
