package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
)

// defaultQuality is used when a tool call does not set quality.
const defaultQuality = 100

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// EditResult describes the image produced by an editing tool. ImageBase64 is
// set only when the result was not saved to a file.
type EditResult struct {
	Path        string `json:"path,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each editing tool:
//  1. Unmarshals arguments from JSON
//  2. Opens the source image through the backend
//  3. Applies its operation (or, for image_edit, the whole pipeline)
//  4. Saves to the output path or renders base64
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_render":
		return s.handleImageRender(args)
	case "image_edit":
		return s.handleImageEdit(args)
	}

	if op, ok := strings.CutPrefix(name, "image_"); ok && isOperation(op) {
		return s.handleSingleOperation(op, args)
	}
	return nil, fmt.Errorf("unknown tool: %s", name)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Argument Types ===

// offsetArg decodes a JSON offset: null, absent, false or "center" center the
// region, true or "far" anchor it to the far edge, and a number is explicit.
type offsetArg struct {
	editor.Offset
}

func (o *offsetArg) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false":
		o.Offset = editor.OffsetCenter()
		return nil
	case "true":
		o.Offset = editor.OffsetFar()
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		o.Offset = editor.OffsetAt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("offset must be null, a boolean, an integer or a string: %s", data)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "centre":
		o.Offset = editor.OffsetCenter()
	case "far", "right", "bottom", "end":
		o.Offset = editor.OffsetFar()
	default:
		return fmt.Errorf("unknown offset %q", s)
	}
	return nil
}

// outputArgs selects where an edited image goes.
type outputArgs struct {
	Output  string `json:"output,omitempty"`
	Format  string `json:"format,omitempty"`
	Quality *int   `json:"quality,omitempty"`
}

// operation is one editing step. Op names the step; only the fields that
// step uses are read.
type operation struct {
	Op        string    `json:"op"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Mode      string    `json:"mode"`
	X         offsetArg `json:"x"`
	Y         offsetArg `json:"y"`
	Degrees   int       `json:"degrees"`
	Direction string    `json:"direction"`
	Amount    int       `json:"amount"`
	Opacity   *int      `json:"opacity"`
	FadeIn    bool      `json:"fade_in"`
	Watermark string    `json:"watermark"`
	Color     string    `json:"color"`
}

type editArgs struct {
	Path string `json:"path"`
	operation
	outputArgs
}

type pipelineArgs struct {
	Path       string      `json:"path"`
	Operations []operation `json:"operations"`
	outputArgs
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

var errMissingPath = errors.New("path is required")

func isOperation(name string) bool {
	switch name {
	case "resize", "crop", "rotate", "flip", "sharpen", "reflection", "watermark", "background":
		return true
	}
	return false
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// === Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Path) == "" {
		return nil, errMissingPath
	}
	img, err := editor.Open(a.Path, s.backend)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return img.Info(), nil
}

func (s *Server) handleSingleOperation(op string, args json.RawMessage) (interface{}, error) {
	var a editArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.Op = op
	return s.runEdit(a.Path, a.outputArgs, []operation{a.operation})
}

func (s *Server) handleImageRender(args json.RawMessage) (interface{}, error) {
	var a editArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runEdit(a.Path, a.outputArgs, nil)
}

func (s *Server) handleImageEdit(args json.RawMessage) (interface{}, error) {
	var a pipelineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Operations) == 0 {
		return nil, errors.New("operations must not be empty")
	}
	return s.runEdit(a.Path, a.outputArgs, a.Operations)
}

// runEdit opens path, applies ops in order and emits the result. The image
// is released on every path.
func (s *Server) runEdit(path string, out outputArgs, ops []operation) (*EditResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errMissingPath
	}
	img, err := editor.Open(path, s.backend)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	for i, op := range ops {
		if err := s.applyOperation(img, op); err != nil {
			if len(ops) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("operation %d (%s): %w", i+1, op.Op, err)
		}
	}
	return s.emit(img, out)
}

func (s *Server) applyOperation(img *editor.Image, op operation) error {
	switch op.Op {
	case "resize":
		mode, err := editor.ParseResizeMode(op.Mode)
		if err != nil {
			return err
		}
		return img.Resize(op.Width, op.Height, mode)
	case "crop":
		return img.Crop(op.Width, op.Height, op.X.Offset, op.Y.Offset)
	case "rotate":
		return img.Rotate(op.Degrees)
	case "flip":
		return img.Flip(editor.ParseDirection(op.Direction))
	case "sharpen":
		return img.Sharpen(op.Amount)
	case "reflection":
		return img.Reflection(op.Height, intOr(op.Opacity, 100), op.FadeIn)
	case "watermark":
		if strings.TrimSpace(op.Watermark) == "" {
			return errors.New("watermark path is required")
		}
		mark, err := editor.Open(op.Watermark, s.backend)
		if err != nil {
			return fmt.Errorf("watermark: %w", err)
		}
		defer mark.Close()
		return img.Watermark(mark, op.X.Offset, op.Y.Offset, intOr(op.Opacity, 100))
	case "background":
		return img.Background(op.Color, intOr(op.Opacity, 100))
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
}

// emit saves img to out.Output, or renders it as base64 when no output path
// is given.
func (s *Server) emit(img *editor.Image, out outputArgs) (*EditResult, error) {
	quality := intOr(out.Quality, defaultQuality)

	if out.Output != "" {
		if err := img.Save(out.Output, quality); err != nil {
			return nil, err
		}
		return &EditResult{
			Path:     out.Output,
			Width:    img.Width(),
			Height:   img.Height(),
			Format:   img.Format().String(),
			MimeType: img.MimeType(),
		}, nil
	}

	format := editor.FormatUnknown
	if out.Format != "" {
		f, err := editor.ParseFormat(out.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	data, err := img.Render(format, quality)
	if err != nil {
		return nil, err
	}
	return &EditResult{
		Width:       img.Width(),
		Height:      img.Height(),
		Format:      img.Format().String(),
		MimeType:    img.MimeType(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}
