package imagetool

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/NeekChaw/mcp-server-okppt/internal/svgutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="50" height="50">
<rect x="5" y="5" width="40" height="40" fill="orange"/>
</svg>`

const unsizedSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<rect x="5" y="5" width="40" height="40" fill="orange"/>
</svg>`

func TestConvertSVGToPNG(t *testing.T) {
	tmpDir := t.TempDir()
	svgPath := filepath.Join(tmpDir, "icon.svg")
	if err := os.WriteFile(svgPath, []byte(squareSVG), 0o600); err != nil {
		t.Fatalf("write svg: %v", err)
	}

	tests := []struct {
		name     string
		args     ConvertSVGToPNGArgs
		wantPath string
		wantW    int
		wantH    int
		wantErr  error
	}{
		{
			name:     "default output path swaps extension",
			args:     ConvertSVGToPNGArgs{SVGPath: svgPath},
			wantPath: filepath.Join(tmpDir, "icon.png"),
			wantW:    50,
			wantH:    50,
		},
		{
			name: "explicit output path with missing parent",
			args: ConvertSVGToPNGArgs{
				SVGPath:    svgPath,
				OutputPath: filepath.Join(tmpDir, "out", "raster.png"),
			},
			wantPath: filepath.Join(tmpDir, "out", "raster.png"),
			wantW:    50,
			wantH:    50,
		},
		{
			name:    "missing source",
			args:    ConvertSVGToPNGArgs{SVGPath: filepath.Join(tmpDir, "absent.svg")},
			wantErr: spec.ErrFileNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ConvertSVGToPNG(t.Context(), tc.args)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConvertSVGToPNG: %v", err)
			}
			if out.OutputPath != tc.wantPath {
				t.Fatalf("outputPath = %q, want %q", out.OutputPath, tc.wantPath)
			}
			if out.WidthPx != tc.wantW || out.HeightPx != tc.wantH {
				t.Fatalf("size = %dx%d, want %dx%d", out.WidthPx, out.HeightPx, tc.wantW, tc.wantH)
			}
			data, err := os.ReadFile(out.OutputPath)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if _, err := png.Decode(bytes.NewReader(data)); err != nil {
				t.Fatalf("output is not valid PNG: %v", err)
			}
		})
	}
}

func TestConvertSVGToPNGDefaultSize(t *testing.T) {
	tmpDir := t.TempDir()
	svgPath := filepath.Join(tmpDir, "unsized.svg")
	if err := os.WriteFile(svgPath, []byte(unsizedSVG), 0o600); err != nil {
		t.Fatalf("write svg: %v", err)
	}

	out, err := ConvertSVGToPNG(t.Context(), ConvertSVGToPNGArgs{SVGPath: svgPath})
	if err != nil {
		t.Fatalf("ConvertSVGToPNG: %v", err)
	}
	if out.WidthPx != svgutil.DefaultSizePx || out.HeightPx != svgutil.DefaultSizePx {
		t.Fatalf("size = %dx%d, want default %dx%d",
			out.WidthPx, out.HeightPx, svgutil.DefaultSizePx, svgutil.DefaultSizePx)
	}
}

func TestConvertSVGToPNGNoPartialOutput(t *testing.T) {
	tmpDir := t.TempDir()
	svgPath := filepath.Join(tmpDir, "bad.svg")
	if err := os.WriteFile(svgPath, []byte("<svg><rect "), 0o600); err != nil {
		t.Fatalf("write svg: %v", err)
	}

	_, err := ConvertSVGToPNG(t.Context(), ConvertSVGToPNGArgs{SVGPath: svgPath})
	if !errors.Is(err, spec.ErrUnsupportedVectorFeature) {
		t.Fatalf("error = %v, want ErrUnsupportedVectorFeature", err)
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "bad.png")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("partial PNG written for failed conversion")
	}
}

func TestDefaultPNGPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "a/b/icon.svg", want: "a/b/icon.png"},
		{in: "icon.SVG", want: "icon.png"},
		{in: "noext", want: "noext.png"},
	}
	for _, tc := range tests {
		if got := defaultPNGPath(tc.in); got != tc.want {
			t.Fatalf("defaultPNGPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
