package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_greyscale").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_greyscale":
		return s.handleImageGreyscale(args)
	case "image_invert":
		return s.handleImageInvert(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// TransformResult is returned by the greyscale and invert tools.
type TransformResult struct {
	imaging.EncodedImage

	// Weights names the coefficient set used; empty for image_invert.
	Weights string `json:"weights,omitempty"`

	// Domain is the sample domain the transform ran in.
	Domain string `json:"domain"`

	// MinSample and MaxSample bound the unclipped output samples.
	MinSample float64 `json:"min_sample"`
	MaxSample float64 `json:"max_sample"`

	// OutputPath is set when the result was also written to disk.
	OutputPath string `json:"output_path,omitempty"`
}

type imageGreyscaleArgs struct {
	Path       string `json:"path"`
	Weights    string `json:"weights"`
	Domain     string `json:"domain"`
	Invert     bool   `json:"invert"`
	Stretch    *bool  `json:"stretch"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageGreyscale(args json.RawMessage) (interface{}, error) {
	var a imageGreyscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Weights == "" {
		a.Weights = "literal"
	}
	if a.Domain == "" {
		a.Domain = transform.Domain8Bit.String()
	}
	if a.Stretch == nil {
		stretch := true
		a.Stretch = &stretch
	}

	weights, err := transform.ParseWeights(a.Weights)
	if err != nil {
		return nil, err
	}
	buf, err := s.loadBuffer(a.Path, a.Domain)
	if err != nil {
		return nil, err
	}

	out, err := transform.ToGreyscaleWith(buf, weights)
	if err != nil {
		return nil, err
	}
	if a.Invert {
		if out, err = transform.Invert(out); err != nil {
			return nil, err
		}
	}

	opts := imaging.RenderOptions{}
	if *a.Stretch {
		opts.Colormap = imaging.ColormapGray
	}
	result, err := s.encodeResult(out, opts, a.OutputPath)
	if err != nil {
		return nil, err
	}
	result.Weights = a.Weights
	return result, nil
}

type imageInvertArgs struct {
	Path       string `json:"path"`
	Domain     string `json:"domain"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageInvert(args json.RawMessage) (interface{}, error) {
	var a imageInvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Domain == "" {
		a.Domain = transform.Domain8Bit.String()
	}

	buf, err := s.loadBuffer(a.Path, a.Domain)
	if err != nil {
		return nil, err
	}
	out, err := transform.Invert(buf)
	if err != nil {
		return nil, err
	}
	return s.encodeResult(out, imaging.RenderOptions{}, a.OutputPath)
}

// loadBuffer reads path through the cache and converts it to the named domain.
func (s *Server) loadBuffer(path, domainName string) (*transform.Buffer, error) {
	domain, err := transform.ParseDomain(domainName)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.FromImage(img, domain)
}

// encodeResult renders buf inline and, when outputPath is set, saves it too.
func (s *Server) encodeResult(buf *transform.Buffer, opts imaging.RenderOptions, outputPath string) (*TransformResult, error) {
	enc, err := imaging.EncodePNGBase64(buf, opts)
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		if err := imaging.Save(outputPath, buf, opts); err != nil {
			return nil, err
		}
	}

	lo, hi := buf.Bounds()
	return &TransformResult{
		EncodedImage: *enc,
		Domain:       buf.Domain.String(),
		MinSample:    lo,
		MaxSample:    hi,
		OutputPath:   outputPath,
	}, nil
}
