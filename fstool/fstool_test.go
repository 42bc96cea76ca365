package fstool

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/NeekChaw/mcp-server-okppt/spec"
)

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b.svg", "a.svg", "deck.pptx", "old.ppt", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	tests := []struct {
		name    string
		args    ListFilesArgs
		want    []string
		wantErr error
	}{
		{
			name: "all entries sorted",
			args: ListFilesArgs{Path: tmpDir},
			want: []string{"a.svg", "b.svg", "deck.pptx", "notes.txt", "old.ppt"},
		},
		{
			name: "svg filter",
			args: ListFilesArgs{Path: tmpDir, FileType: "svg"},
			want: []string{"a.svg", "b.svg"},
		},
		{
			name: "pptx filter includes legacy ppt",
			args: ListFilesArgs{Path: tmpDir, FileType: "pptx"},
			want: []string{"deck.pptx", "old.ppt"},
		},
		{
			name: "bare extension filter",
			args: ListFilesArgs{Path: tmpDir, FileType: "txt"},
			want: []string{"notes.txt"},
		},
		{
			name: "dotted extension filter",
			args: ListFilesArgs{Path: tmpDir, FileType: ".txt"},
			want: []string{"notes.txt"},
		},
		{
			name: "no matches",
			args: ListFilesArgs{Path: tmpDir, FileType: "png"},
			want: []string{},
		},
		{
			name:    "missing directory",
			args:    ListFilesArgs{Path: filepath.Join(tmpDir, "nope")},
			wantErr: spec.ErrFileNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ListFiles(t.Context(), tc.args)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListFiles: %v", err)
			}
			if !reflect.DeepEqual(out.Entries, tc.want) {
				t.Fatalf("entries = %v, want %v", out.Entries, tc.want)
			}
		})
	}
}

func TestGetFileInfo(t *testing.T) {
	tmpDir := t.TempDir()
	svgPath := filepath.Join(tmpDir, "icon.svg")
	if err := os.WriteFile(svgPath, []byte("<svg/>"), 0o600); err != nil {
		t.Fatalf("write svg: %v", err)
	}

	t.Run("existing svg file", func(t *testing.T) {
		out, err := GetFileInfo(t.Context(), GetFileInfoArgs{Path: svgPath})
		if err != nil {
			t.Fatalf("GetFileInfo: %v", err)
		}
		if !out.Exists || out.IsDir || out.Kind != "svg" {
			t.Fatalf("out = %+v, want existing svg file", out)
		}
		if out.SizeBytes != int64(len("<svg/>")) {
			t.Fatalf("size = %d", out.SizeBytes)
		}
		if out.ModTime == nil {
			t.Fatal("modTime not set")
		}
	})

	t.Run("missing path reports exists=false", func(t *testing.T) {
		out, err := GetFileInfo(t.Context(), GetFileInfoArgs{Path: filepath.Join(tmpDir, "gone.svg")})
		if err != nil {
			t.Fatalf("GetFileInfo: %v", err)
		}
		if out.Exists {
			t.Fatalf("out = %+v, want exists=false", out)
		}
	})

	t.Run("directory", func(t *testing.T) {
		out, err := GetFileInfo(t.Context(), GetFileInfoArgs{Path: tmpDir})
		if err != nil {
			t.Fatalf("GetFileInfo: %v", err)
		}
		if !out.IsDir || out.Kind != "" {
			t.Fatalf("out = %+v, want directory with no kind", out)
		}
	})

	t.Run("empty path is an error", func(t *testing.T) {
		if _, err := GetFileInfo(t.Context(), GetFileInfoArgs{}); err == nil {
			t.Fatal("expected error for empty path")
		}
	})

	t.Run("corrupt deck still yields file metadata", func(t *testing.T) {
		deckPath := filepath.Join(tmpDir, "broken.pptx")
		if err := os.WriteFile(deckPath, []byte("not a zip"), 0o600); err != nil {
			t.Fatalf("write deck: %v", err)
		}
		out, err := GetFileInfo(t.Context(), GetFileInfoArgs{Path: deckPath})
		if err != nil {
			t.Fatalf("GetFileInfo: %v", err)
		}
		if out.Kind != "presentation" || out.SlideCount != nil {
			t.Fatalf("out = %+v, want presentation without slide count", out)
		}
	})
}
