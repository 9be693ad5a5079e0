package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile writes a uniform PNG into a temp dir and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult unwraps the JSON text content of a successful tool call into v.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v", content[0]["type"])
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("unmarshal tool result: %v", err)
	}
}

func decodePNG(t *testing.T, b64 string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	return img
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	path := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info struct {
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		Channels int    `json:"channels"`
		Format   string `json:"format"`
	}
	toolResult(t, callTool(t, New("dev"), "image_load", map[string]interface{}{"path": path}), &info)

	if info.Width != 100 || info.Height != 80 || info.Channels != 3 || info.Format != "png" {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestHandleToolsCall_ImageGreyscale(t *testing.T) {
	path := createTestImageFile(t, 2, 2, color.RGBA{100, 150, 200, 255})

	var result TransformResult
	toolResult(t, callTool(t, New("dev"), "image_greyscale", map[string]interface{}{
		"path":    path,
		"stretch": false,
	}), &result)

	if result.Weights != "literal" || result.Domain != "8bit" {
		t.Errorf("defaults not applied: %+v", result)
	}
	if result.Channels != 1 || result.Width != 2 || result.Height != 2 {
		t.Errorf("shape: got %dx%dx%d", result.Height, result.Width, result.Channels)
	}
	if math.Abs(result.MinSample-272.88) > 1e-9 || math.Abs(result.MaxSample-272.88) > 1e-9 {
		t.Errorf("samples: got [%v, %v], want 272.88", result.MinSample, result.MaxSample)
	}

	// 272.88 exceeds 255 and is clipped to white without stretching.
	img := decodePNG(t, result.ImageBase64)
	if g := color.GrayModel.Convert(img.At(1, 1)).(color.Gray).Y; g != 255 {
		t.Errorf("rendered pixel: got %d, want 255", g)
	}
}

func TestHandleToolsCall_ImageGreyscaleInvertRec709(t *testing.T) {
	path := createTestImageFile(t, 3, 3, color.RGBA{255, 255, 255, 255})

	var result TransformResult
	toolResult(t, callTool(t, New("dev"), "image_greyscale", map[string]interface{}{
		"path":    path,
		"weights": "rec709",
		"domain":  "unit",
		"invert":  true,
	}), &result)

	if math.Abs(result.MaxSample) > 1e-12 || math.Abs(result.MinSample) > 1e-12 {
		t.Errorf("inverted white should be 0, got [%v, %v]", result.MinSample, result.MaxSample)
	}
	if result.Domain != "unit" || result.Weights != "rec709" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandleToolsCall_ImageGreyscaleWritesOutput(t *testing.T) {
	path := createTestImageFile(t, 4, 4, color.RGBA{10, 200, 30, 255})
	out := filepath.Join(t.TempDir(), "image_solutions", "grey.jpg")

	var result TransformResult
	toolResult(t, callTool(t, New("dev"), "image_greyscale", map[string]interface{}{
		"path":        path,
		"output_path": out,
	}), &result)

	if result.OutputPath != out {
		t.Errorf("OutputPath: got %s, want %s", result.OutputPath, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestHandleToolsCall_ImageInvert(t *testing.T) {
	path := createTestImageFile(t, 2, 1, color.RGBA{0, 128, 255, 255})

	var result TransformResult
	toolResult(t, callTool(t, New("dev"), "image_invert", map[string]interface{}{"path": path}), &result)

	if result.Channels != 3 || result.Weights != "" {
		t.Errorf("unexpected result: %+v", result)
	}

	img := decodePNG(t, result.ImageBase64)
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 127 || b>>8 != 0 {
		t.Errorf("inverted pixel: got (%d,%d,%d), want (255,127,0)", r>>8, g>>8, b>>8)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	path := createTestImageFile(t, 2, 2, color.RGBA{1, 2, 3, 255})
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name     string
		tool     string
		args     map[string]interface{}
		wantData string
	}{
		{"unknown tool", "image_crop", map[string]interface{}{"path": path}, "unknown tool"},
		{"missing file", "image_greyscale", map[string]interface{}{"path": missing}, "not found"},
		{"bad weights", "image_greyscale", map[string]interface{}{"path": path, "weights": "bt601"}, "unknown greyscale weights"},
		{"bad domain", "image_invert", map[string]interface{}{"path": path, "domain": "16bit"}, "unknown sample domain"},
		{"bad output extension", "image_invert", map[string]interface{}{"path": path, "output_path": filepath.Join(t.TempDir(), "x.foo")}, "encode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, New("dev"), tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
			data, _ := resp.Error.Data.(string)
			if !strings.Contains(data, tt.wantData) {
				t.Errorf("Error data %q should contain %q", data, tt.wantData)
			}
		})
	}
}

func TestHandleToolsCall_GreyscaleOnGreyInput(t *testing.T) {
	grey := image.NewGray(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "grey.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, grey); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	resp := callTool(t, New("dev"), "image_greyscale", map[string]interface{}{"path": path})
	if resp.Error == nil {
		t.Fatal("expected error for a greyscale input")
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "invalid input") {
		t.Errorf("Error data should report invalid input: %q", data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	resp := New("dev").handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
