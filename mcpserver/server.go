package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	okppt "github.com/NeekChaw/mcp-server-okppt"
	"github.com/NeekChaw/mcp-server-okppt/internal/logutil"
	"github.com/NeekChaw/mcp-server-okppt/spec"
)

// maxLineBytes bounds a single JSON-RPC frame on stdin. Base64-encoded
// documents can get large, so this is well above the bufio default.
const maxLineBytes = 16 * 1024 * 1024

// Server speaks MCP (JSON-RPC 2.0, one message per line) over a reader/writer
// pair and dispatches tools/call requests to a tool registry.
type Server struct {
	registry *okppt.Registry
	name     string
	version  string
	in       io.Reader
	out      io.Writer
}

type ServerOption func(*Server)

// WithServerInfo sets the name and version reported in the initialize result.
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// WithIO overrides the transport streams. Defaults are stdin/stdout.
func WithIO(in io.Reader, out io.Writer) ServerOption {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

func NewServer(registry *okppt.Registry, opts ...ServerOption) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil registry")
	}
	s := &Server{
		registry: registry,
		name:     "mcp-server-okppt",
		version:  "dev",
		in:       os.Stdin,
		out:      os.Stdout,
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	return s, nil
}

// Serve reads requests line by line until EOF or ctx cancellation.
// Notifications produce no response; everything else gets exactly one line.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		resp := s.handleLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := s.writeResponse(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

func (s *Server) writeResponse(resp *jsonRPCResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = s.out.Write(data)
	return err
}

func (s *Server) handleLine(ctx context.Context, line string) *jsonRPCResponse {
	var req jsonRPCRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return errorResponse(nil, codeParseError, "Parse error")
	}

	// Notifications carry no ID and expect no response.
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleInitialize(req jsonRPCRequest) *jsonRPCResponse {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	}
	return resultResponse(req.ID, result)
}

func (s *Server) handleToolsList(req jsonRPCRequest) *jsonRPCResponse {
	tools := s.registry.Tools()
	descriptors := make([]toolDescriptor, 0, len(tools))
	for _, t := range tools {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Slug,
			Description: t.Description,
			InputSchema: json.RawMessage(t.ArgSchema),
		})
	}
	return resultResponse(req.ID, toolsListResult{Tools: descriptors})
}

func (s *Server) handleToolsCall(ctx context.Context, req jsonRPCRequest) *jsonRPCResponse {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}
	if params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params: missing tool name")
	}
	if _, ok := s.registry.LookupBySlug(params.Name); !ok {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Tool not found: %s", params.Name))
	}

	args := params.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	outputs, err := s.registry.CallBySlug(ctx, params.Name, args)
	if err != nil {
		logutil.WarnContext(ctx, "tool call failed",
			"tool", params.Name,
			"error", err)
		return resultResponse(req.ID, toolCallResult{
			Content: []contentBlock{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
	}
	return resultResponse(req.ID, toolCallResult{Content: outputsToContent(outputs)})
}

func outputsToContent(outputs []spec.ToolOutputUnion) []contentBlock {
	blocks := make([]contentBlock, 0, len(outputs))
	for _, out := range outputs {
		switch out.Kind {
		case spec.ToolOutputKindText:
			if out.TextItem != nil {
				blocks = append(blocks, contentBlock{Type: "text", Text: out.TextItem.Text})
			}
		case spec.ToolOutputKindImage:
			if out.ImageItem != nil {
				blocks = append(blocks, contentBlock{
					Type:     "image",
					Data:     out.ImageItem.ImageData,
					MIMEType: out.ImageItem.ImageMIME,
				})
			}
		case spec.ToolOutputKindFile:
			if out.FileItem != nil {
				// MCP has no first-class file block; surface as text reference.
				blocks = append(blocks, contentBlock{
					Type: "text",
					Text: fmt.Sprintf("file: %s (%s)", out.FileItem.FileName, out.FileItem.FileMIME),
				})
			}
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, contentBlock{Type: "text", Text: "ok"})
	}
	return blocks
}
