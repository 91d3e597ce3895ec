package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	return writeTestImage(t, img)
}

// createTwoToneImageFile creates an image split into a dark left half and a
// bright right half, giving segment detection one strong vertical line.
func createTwoToneImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	return writeTestImage(t, img)
}

func writeTestImage(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool runs one tools/call request against a fresh request envelope.
func callTool(s *Server, name string, args map[string]interface{}) *MCPResponse {
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	return s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
}

// contentText extracts the JSON payload from a successful tool response.
func contentText(t *testing.T, resp *MCPResponse) string {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result should carry content")
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content[0].text should be a string")
	}
	return text
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	resp := callTool(s, "image_load", map[string]interface{}{"path": imgPath})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	if err := json.Unmarshal([]byte(contentText(t, resp)), &info); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	resp := callTool(s, "image_dimensions", map[string]interface{}{"path": imgPath})

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := json.Unmarshal([]byte(contentText(t, resp)), &dims); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(s, "image_load", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	resp := callTool(s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_EdgeDetect(t *testing.T) {
	s := New()
	imgPath := createTwoToneImageFile(t, 100, 100)

	resp := callTool(s, "image_edge_detect", map[string]interface{}{"path": imgPath})

	var result struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	if err := json.Unmarshal([]byte(contentText(t, resp)), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", result.MimeType)
	}
	if result.ImageBase64 == "" {
		t.Error("ImageBase64 should not be empty")
	}
}

func TestHandleToolsCall_EdgeDetect_ExplicitThresholds(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	resp := callTool(s, "image_edge_detect", map[string]interface{}{
		"path":           imgPath,
		"threshold_low":  30,
		"threshold_high": 100,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_DetectSegments_Blank(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{200, 200, 200, 255})

	resp := callTool(s, "image_detect_segments", map[string]interface{}{"path": imgPath})

	var result SegmentsResult
	if err := json.Unmarshal([]byte(contentText(t, resp)), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("blank image should yield no segments, got %d", result.Count)
	}
}

func TestHandleToolsCall_DetectSegments_Edge(t *testing.T) {
	s := New()
	imgPath := createTwoToneImageFile(t, 100, 100)

	resp := callTool(s, "image_detect_segments", map[string]interface{}{"path": imgPath})

	var result SegmentsResult
	if err := json.Unmarshal([]byte(contentText(t, resp)), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if result.Count < 1 {
		t.Error("two-tone image should yield at least one segment")
	}
	if result.Count != len(result.Segments) {
		t.Errorf("Count %d disagrees with %d segments", result.Count, len(result.Segments))
	}
}

func TestHandleToolsCall_FindVanishingPoints_Blank(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{200, 200, 200, 255})

	resp := callTool(s, "image_find_vanishing_points", map[string]interface{}{"path": imgPath})

	// A structureless image has no vanishing points to report.
	if resp.Error == nil {
		t.Fatal("Expected error for image without linear structure")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_FindHorizon_Blank(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{200, 200, 200, 255})

	resp := callTool(s, "image_find_horizon", map[string]interface{}{"path": imgPath})

	var result HorizonResult
	if err := json.Unmarshal([]byte(contentText(t, resp)), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	// No linear structure degrades to a flat line through the image center.
	if result.Horizon.Slope != 0 {
		t.Errorf("Slope: got %v, want 0", result.Horizon.Slope)
	}
	if result.Horizon.Intercept != 40 {
		t.Errorf("Intercept: got %v, want 40", result.Horizon.Intercept)
	}
	if len(result.VanishingPoints) != 0 {
		t.Errorf("VanishingPoints: got %d, want 0", len(result.VanishingPoints))
	}
}

func TestHandleToolsCall_RenderClusters_Blank(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 120, 90, color.RGBA{200, 200, 200, 255})

	resp := callTool(s, "image_render_clusters", map[string]interface{}{
		"path":         imgPath,
		"draw_horizon": true,
	})

	var result struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	if err := json.Unmarshal([]byte(contentText(t, resp)), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if result.Width != 120 || result.Height != 90 {
		t.Errorf("dimensions: got %dx%d, want 120x90", result.Width, result.Height)
	}
	if !strings.HasPrefix(result.ImageBase64, "iVBOR") {
		t.Error("encoded payload does not look like PNG")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`invalid json`),
	})

	if resp.Error == nil {
		t.Fatal("Expected error for invalid JSON params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	imgPath := createTwoToneImageFile(t, 100, 100)

	// image_find_vanishing_points is covered separately: a single edge is
	// not enough structure for it to succeed.
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_edge_detect", map[string]interface{}{"path": imgPath}},
		{"image_detect_segments", map[string]interface{}{"path": imgPath}},
		{"image_find_horizon", map[string]interface{}{"path": imgPath}},
		{"image_render_clusters", map[string]interface{}{"path": imgPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
