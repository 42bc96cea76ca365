package pdfutil

import (
	"github.com/ledongthuc/pdf"

	"github.com/NeekChaw/mcp-server-okppt/internal/toolutil"
)

// PageCountSafe returns the page count of a local PDF with panic recovery.
// The underlying parser panics on some malformed inputs.
func PageCountSafe(path string) (int, error) {
	return toolutil.WithRecoveryResp(func() (int, error) {
		return pageCount(path)
	})
}

func pageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return r.NumPage(), nil
}
