package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ironsheep/pic2block/internal/detection"
	"github.com/ironsheep/pic2block/internal/imaging"
	"github.com/ironsheep/pic2block/internal/recognition"
	"github.com/ironsheep/pic2block/internal/shapes"
)

// errInvalidArguments marks tool failures caused by the client's arguments.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "flowchart_classify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Unknown tools and bad arguments return -32602; failures while running a
// tool return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", slog.String("tool", params.Name), slog.Any("error", err))
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
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
// Each tool handler:
//  1. Unmarshals and validates arguments
//  2. Applies the server defaults for optional parameters
//  3. Runs the recognition pipeline (images come from the shared cache)
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case ToolClassify:
		return s.handleClassify(args)
	case ToolAnnotate:
		return s.handleAnnotate(args)
	case ToolRegions:
		return s.handleRegions(args)
	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArguments, name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// === Flowchart Handlers ===

type classifyArgs struct {
	Path      string  `json:"path"`
	Tolerance *int    `json:"tolerance"`
	OCR       *bool   `json:"ocr"`
	Language  *string `json:"language"`
}

// options merges the arguments over the server defaults.
func (a classifyArgs) options(defaults recognition.Options) (recognition.Options, error) {
	if a.Path == "" {
		return defaults, fmt.Errorf("%w: path is required", errInvalidArguments)
	}
	opts := defaults
	if a.Tolerance != nil {
		if *a.Tolerance <= 0 {
			return defaults, fmt.Errorf("%w: tolerance must be positive, got %d", errInvalidArguments, *a.Tolerance)
		}
		opts.Tolerance = shapes.Tolerance(*a.Tolerance)
	}
	if a.OCR != nil {
		opts.OCR = *a.OCR
	}
	if a.Language != nil && *a.Language != "" {
		opts.Language = *a.Language
	}
	return opts, nil
}

func (s *Server) handleClassify(args json.RawMessage) (interface{}, error) {
	var a classifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(s.defaults)
	if err != nil {
		return nil, err
	}
	return s.recognizer.Recognize(a.Path, opts)
}

// AnnotateResult is the flowchart_annotate result.
type AnnotateResult struct {
	Summary recognition.Summary    `json:"summary"`
	Image   *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleAnnotate(args json.RawMessage) (interface{}, error) {
	var a classifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	a.OCR = nil
	opts, err := a.options(s.defaults)
	if err != nil {
		return nil, err
	}

	rep, annotated, err := s.recognizer.AnnotateFile(a.Path, opts)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNGBase64(annotated)
	if err != nil {
		return nil, err
	}
	return &AnnotateResult{Summary: rep.Summary(), Image: encoded}, nil
}

type regionsArgs struct {
	Path string `json:"path"`
}

// RegionsResult is the flowchart_regions result.
type RegionsResult struct {
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Scale   float64            `json:"scale"`
	Regions []detection.Region `json:"regions"`
}

func (s *Server) handleRegions(args json.RawMessage) (interface{}, error) {
	var a regionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArguments)
	}

	img, scale, err := s.recognizer.LoadImage(a.Path, s.defaults.MaxDimension)
	if err != nil {
		return nil, err
	}
	ext := s.defaults.Extraction
	ext.Logger = s.logger
	regions, err := detection.ExtractRegions(img, ext)
	if err != nil {
		return nil, err
	}
	if regions == nil {
		regions = []detection.Region{}
	}

	b := img.Bounds()
	return &RegionsResult{Width: b.Dx(), Height: b.Dy(), Scale: scale, Regions: regions}, nil
}
