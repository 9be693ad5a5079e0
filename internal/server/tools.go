package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

const (
	greyscaleDescription = "Convert a color image to greyscale with a fixed weighted sum of R, G and B, " +
		"optionally inverting the result. Returns a base64-encoded PNG and the range of the unclipped samples."

	stretchDescription = "Map the data range onto black..white instead of clipping at the domain maximum. Default true"
)

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func domainProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"8bit", "unit"},
		"description": "Sample domain: 8bit (0-255) or unit (0-1). Default 8bit",
		"default":     "8bit",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the result to. The format follows the extension; missing directories are created",
	}
}

func weightsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"literal", "rec709"},
		"description": "Weight set: literal (0.212, 0.7152, 0.722) or rec709 (0.2126, 0.7152, 0.0722). Default literal",
		"default":     "literal",
	}
}

func boolProperty(description string, def bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
		"default":     def,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, channel count and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_greyscale",
			Description: greyscaleDescription,
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"weights":     weightsProperty(),
					"domain":      domainProperty(),
					"invert":      boolProperty("Return the negative of the greyscale image. Default false", false),
					"stretch":     boolProperty(stretchDescription, true),
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_invert",
			Description: "Compute the negative of a color or greyscale image (max - value per sample). Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"domain":      domainProperty(),
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
