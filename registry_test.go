package okppt

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/NeekChaw/mcp-server-okppt/spec"
)

func mkTool(funcID, slug string) spec.Tool {
	return spec.Tool{
		SchemaVersion: spec.SchemaVersion,
		ID:            "01a016b2-4c1d-7a42-9e01-3f52c7a9d2ff",
		Slug:          slug,
		Version:       "v1.0.0",
		DisplayName:   slug,
		Description:   "test tool",
		ArgSchema:     spec.JSONSchema(`{"type":"object"}`),
		GoImpl:        spec.GoToolImpl{FuncID: funcID},
		CreatedAt:     spec.SchemaStartTime,
		ModifiedAt:    spec.SchemaStartTime,
	}
}

func TestNewRegistry_Options(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RegistryOption
		wantDur time.Duration
	}{
		{
			name:    "no options => zero timeout",
			opts:    nil,
			wantDur: 0,
		},
		{
			name:    "WithDefaultCallTimeout sets timeout",
			opts:    []RegistryOption{WithDefaultCallTimeout(123 * time.Millisecond)},
			wantDur: 123 * time.Millisecond,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry(tc.opts...)
			if err != nil {
				t.Fatalf("NewRegistry error: %v", err)
			}
			if r.timeout != tc.wantDur {
				t.Fatalf("timeout: got %v want %v", r.timeout, tc.wantDur)
			}
		})
	}
}

func TestRegistry_RegisterTool_Validation(t *testing.T) {
	okFn := func(context.Context, json.RawMessage) ([]spec.ToolOutputUnion, error) { return nil, nil }

	tests := []struct {
		name            string
		tool            spec.Tool
		fn              spec.ToolFunc
		wantErrContains string
	}{
		{
			name: "missing funcID",
			tool: func() spec.Tool {
				tl := mkTool("x", "s")
				tl.GoImpl.FuncID = ""
				return tl
			}(),
			fn:              okFn,
			wantErrContains: "missing funcID",
		},
		{
			name: "missing schemaVersion",
			tool: func() spec.Tool {
				tl := mkTool("x", "s")
				tl.SchemaVersion = ""
				return tl
			}(),
			fn:              okFn,
			wantErrContains: "missing schemaVersion",
		},
		{
			name: "schemaVersion mismatch",
			tool: func() spec.Tool {
				tl := mkTool("x", "s")
				tl.SchemaVersion = "1900-01-01"
				return tl
			}(),
			fn:              okFn,
			wantErrContains: "does not match",
		},
		{
			name: "invalid argSchema",
			tool: func() spec.Tool {
				tl := mkTool("x", "s")
				tl.ArgSchema = spec.JSONSchema(`{not json`)
				return tl
			}(),
			fn:              okFn,
			wantErrContains: "argSchema",
		},
		{
			name:            "nil func",
			tool:            mkTool("x", "s"),
			fn:              nil,
			wantErrContains: "nil func",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry()
			if err != nil {
				t.Fatalf("NewRegistry: %v", err)
			}
			err = r.RegisterTool(tc.tool, tc.fn)
			if err == nil || !strings.Contains(err.Error(), tc.wantErrContains) {
				t.Fatalf("error = %v, want contains %q", err, tc.wantErrContains)
			}
		})
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	fn := func(context.Context, json.RawMessage) ([]spec.ToolOutputUnion, error) { return nil, nil }
	if err := r.RegisterTool(mkTool("dup", "dup"), fn); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.RegisterTool(mkTool("dup", "dup"), fn); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestBuiltinRegistry_ToolManifest(t *testing.T) {
	r, err := NewBuiltinRegistry()
	if err != nil {
		t.Fatalf("NewBuiltinRegistry: %v", err)
	}

	wantSlugs := []string{
		"batch_insert_svgs",
		"convert_svg_to_png",
		"get_file_info",
		"insert_svg",
		"list_files",
	}
	tools := r.Tools()
	if len(tools) != len(wantSlugs) {
		t.Fatalf("tool count = %d, want %d", len(tools), len(wantSlugs))
	}
	for i, want := range wantSlugs {
		if tools[i].Slug != want {
			t.Fatalf("tools[%d].Slug = %q, want %q (manifest must be sorted)", i, tools[i].Slug, want)
		}
		if !json.Valid(tools[i].ArgSchema) {
			t.Fatalf("tool %q has invalid argSchema", want)
		}
	}
}

func TestRegistry_CallBySlug(t *testing.T) {
	r, err := NewBuiltinRegistry()
	if err != nil {
		t.Fatalf("NewBuiltinRegistry: %v", err)
	}

	tmpDir := t.TempDir()
	out, err := r.CallBySlug(t.Context(), "list_files", json.RawMessage(`{"path":"`+tmpDir+`"}`))
	if err != nil {
		t.Fatalf("CallBySlug: %v", err)
	}
	if len(out) != 1 || out[0].Kind != spec.ToolOutputKindText {
		t.Fatalf("out = %+v, want single text block", out)
	}
	if !strings.Contains(out[0].TextItem.Text, `"entries"`) {
		t.Fatalf("text = %q, want entries payload", out[0].TextItem.Text)
	}

	if _, err := r.CallBySlug(t.Context(), "no_such_tool", nil); err == nil {
		t.Fatal("expected error for unknown slug")
	}

	// Strict decode: unknown fields are rejected.
	_, err = r.CallBySlug(t.Context(), "list_files", json.RawMessage(`{"bogus":true}`))
	if err == nil || !strings.Contains(err.Error(), "invalid input") {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestRegistry_CallTimeout(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	blocked := func(ctx context.Context, in json.RawMessage) ([]spec.ToolOutputUnion, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := r.RegisterTool(mkTool("block", "block"), blocked); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = r.Call(t.Context(), "block", nil, WithCallTimeout(10*time.Millisecond))
	if err == nil || !strings.Contains(err.Error(), "deadline") {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}
