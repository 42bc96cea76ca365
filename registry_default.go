package okppt

import (
	"github.com/NeekChaw/mcp-server-okppt/decktool"
	"github.com/NeekChaw/mcp-server-okppt/fstool"
	"github.com/NeekChaw/mcp-server-okppt/imagetool"
)

// RegisterBuiltins registers the built-in tools into r.
func RegisterBuiltins(r *Registry) error {
	if err := RegisterTypedTool(r, decktool.InsertSVGTool(), decktool.InsertSVG); err != nil {
		return err
	}
	if err := RegisterTypedTool(r, decktool.BatchInsertSVGsTool(), decktool.BatchInsertSVGs); err != nil {
		return err
	}
	if err := RegisterTypedTool(r, imagetool.ConvertSVGToPNGTool(), imagetool.ConvertSVGToPNG); err != nil {
		return err
	}
	if err := RegisterTypedTool(r, fstool.ListFilesTool(), fstool.ListFiles); err != nil {
		return err
	}
	if err := RegisterTypedTool(r, fstool.GetFileInfoTool(), fstool.GetFileInfo); err != nil {
		return err
	}
	return nil
}
