package fstool

import (
	"context"
	"strings"

	"github.com/NeekChaw/mcp-server-okppt/internal/fileutil"
	"github.com/NeekChaw/mcp-server-okppt/internal/toolutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

const listFilesFuncID spec.FuncID = "github.com/NeekChaw/mcp-server-okppt/fstool/listfiles.ListFiles"

var listFilesTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "01a016b2-4c1d-7a42-9e01-3f52c7a9d213",
	Slug:          "list_files",
	Version:       "v1.0.0",
	DisplayName:   "List files",
	Description:   "List directory entries in filename order, optionally filtered by type (\"svg\", \"pptx\", or any extension).",
	Tags:          []string{"fs", "list"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Directory to list.",
		"default": "."
	},
	"fileType": {
		"type": "string",
		"description": "Optional filter: \"svg\", \"pptx\" (includes .ppt), or a bare extension like \"png\"."
	}
},
"required": [],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: listFilesFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

func ListFilesTool() spec.Tool {
	return toolutil.CloneTool(listFilesTool)
}

type ListFilesArgs struct {
	Path     string `json:"path,omitempty"`     // default "."
	FileType string `json:"fileType,omitempty"` // optional extension filter
}

type ListFilesOut struct {
	Entries []string `json:"entries"`
}

// extensionAliases maps friendly type names onto the extensions they cover.
var extensionAliases = map[string][]string{
	"svg":  {".svg"},
	"pptx": {".pptx", ".ppt"},
}

// ListFiles lists entries in Path sorted lexicographically, optionally
// filtered by FileType.
func ListFiles(ctx context.Context, args ListFilesArgs) (*ListFilesOut, error) {
	return toolutil.WithRecoveryResp(func() (*ListFilesOut, error) {
		return listFiles(ctx, args)
	})
}

func listFiles(ctx context.Context, args ListFilesArgs) (*ListFilesOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := args.Path
	if dir == "" {
		dir = "."
	}

	if args.FileType == "" {
		entries, err := fileutil.ListDirectory(dir, "")
		if err != nil {
			return nil, err
		}
		return &ListFilesOut{Entries: entries}, nil
	}

	ft := strings.ToLower(strings.TrimPrefix(args.FileType, "."))
	exts, ok := extensionAliases[ft]
	if !ok {
		exts = []string{"." + ft}
	}
	entries, err := fileutil.ListFilesWithExtension(dir, exts...)
	if err != nil {
		return nil, err
	}
	return &ListFilesOut{Entries: entries}, nil
}
