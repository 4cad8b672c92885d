package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Tool names.
const (
	ToolClassify = "flowchart_classify"
	ToolAnnotate = "flowchart_annotate"
	ToolRegions  = "flowchart_regions"
)

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the flowchart image",
}

var toleranceProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Pixel distance below which two coordinates count as equal. Default from server configuration (5)",
	"minimum":     1,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: ToolClassify,
			Description: "Detect the blocks of a flowchart image and classify them as Rectangle (process), " +
				"Diamond (decision) or Input (parallelogram). Returns every shape keyed by its centroid " +
				"(\"c.x:<x>, c.y:<y>\") with vertices, bounds, class and optionally the text inside it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty,
					"tolerance": toleranceProperty,
					"ocr": map[string]interface{}{
						"type":        "boolean",
						"description": "Read the text inside every classified block with Tesseract",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code, e.g. \"eng\"",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: ToolAnnotate,
			Description: "Classify a flowchart image and return a copy with every shape outlined in the colour " +
				"of its class, as base64-encoded PNG, together with per-class counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty,
					"tolerance": toleranceProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name: ToolRegions,
			Description: "Return the raw enclosed regions found in an image before classification: centroid, " +
				"approximated vertices, bounding box and pixel area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
