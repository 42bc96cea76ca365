package fstool

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/NeekChaw/mcp-server-okppt/internal/deck"
	"github.com/NeekChaw/mcp-server-okppt/internal/fileutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/logutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/pdfutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/toolutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

const getFileInfoFuncID spec.FuncID = "github.com/NeekChaw/mcp-server-okppt/fstool/fileinfo.GetFileInfo"

var getFileInfoTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "01a016b2-4c1d-7a42-9e01-3f52c7a9d214",
	Slug:          "get_file_info",
	Version:       "v1.0.0",
	DisplayName:   "Get file info",
	Description:   "Return size and modification time for a path; slide count for PPTX decks and page count for PDFs.",
	Tags:          []string{"fs", "stat"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Path to inspect."
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: getFileInfoFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

func GetFileInfoTool() spec.Tool {
	return toolutil.CloneTool(getFileInfoTool)
}

type GetFileInfoArgs struct {
	Path string `json:"path"`
}

type GetFileInfoOut struct {
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	Exists    bool       `json:"exists"`
	IsDir     bool       `json:"isDir"`
	SizeBytes int64      `json:"sizeBytes,omitempty"`
	ModTime   *time.Time `json:"modTime,omitempty"`

	// Kind is a coarse classification from the extension: "svg",
	// "presentation", "pdf", or the bare extension.
	Kind string `json:"kind,omitempty"`

	// SlideCount is set for readable presentation documents.
	SlideCount *int `json:"slideCount,omitempty"`
	// PageCount is set for readable PDFs.
	PageCount *int `json:"pageCount,omitempty"`
}

// GetFileInfo returns metadata for the supplied path without mutating it.
// Non-existent paths yield Exists=false with a nil error.
func GetFileInfo(ctx context.Context, args GetFileInfoArgs) (*GetFileInfoOut, error) {
	return toolutil.WithRecoveryResp(func() (*GetFileInfoOut, error) {
		return getFileInfo(ctx, args)
	})
}

func getFileInfo(ctx context.Context, args GetFileInfoArgs) (*GetFileInfoOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fileutil.StatPath(args.Path)
	if err != nil {
		return nil, err
	}

	out := &GetFileInfoOut{
		Path:      info.Path,
		Name:      info.Name,
		Exists:    info.Exists,
		IsDir:     info.IsDir,
		SizeBytes: info.Size,
		ModTime:   info.ModTime,
	}
	if !info.Exists || info.IsDir {
		return out, nil
	}

	ext := strings.ToLower(filepath.Ext(args.Path))
	switch ext {
	case ".svg":
		out.Kind = "svg"
	case ".pptx", ".ppt":
		out.Kind = "presentation"
		if count, err := deck.SlideCount(args.Path); err != nil {
			// Still report plain file metadata for unreadable decks.
			logutil.WarnContext(ctx, "file info: slide count unavailable", "path", args.Path, "err", err)
		} else {
			out.SlideCount = &count
		}
	case ".pdf":
		out.Kind = "pdf"
		if count, err := pdfutil.PageCountSafe(args.Path); err != nil {
			logutil.WarnContext(ctx, "file info: page count unavailable", "path", args.Path, "err", err)
		} else {
			out.PageCount = &count
		}
	default:
		out.Kind = strings.TrimPrefix(ext, ".")
	}

	return out, nil
}
