package server

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/perceptionworks/vanish/internal/detection"
	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/horizon"
	"github.com/perceptionworks/vanish/internal/imaging"
	"github.com/perceptionworks/vanish/internal/render"
	"github.com/perceptionworks/vanish/internal/vanish"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_find_vanishing_points").
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection/vanish function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Edge and Segment Detection
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_detect_segments":
		return s.handleImageDetectSegments(args)

	// Vanishing Point Estimation
	case "image_find_vanishing_points":
		return s.handleImageFindVanishingPoints(args)
	case "image_find_horizon":
		return s.handleImageFindHorizon(args)

	// Rendering
	case "image_render_clusters":
		return s.handleImageRenderClusters(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
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

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Edge and Segment Detection Handlers ===

type imageEdgeDetectArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 && a.ThresholdHigh == 0 {
		a.ThresholdLow, a.ThresholdHigh = imaging.AutoThresholds(img, detection.DefaultOptions().EdgeSigma)
	}
	return imaging.EdgeDetect(img, a.ThresholdLow, a.ThresholdHigh)
}

type detectionArgs struct {
	Path        string  `json:"path"`
	MinLength   float64 `json:"min_length"`
	MaxLength   float64 `json:"max_length"`
	MaxSegments int     `json:"max_segments"`
	EdgeSigma   float64 `json:"edge_sigma"`
}

// detectionOptions converts the JSON arguments to detection options. Zero
// values stay zero; detection fills them from its defaults.
func (a detectionArgs) detectionOptions() detection.Options {
	return detection.Options{
		MinLength:   a.MinLength,
		MaxLength:   a.MaxLength,
		MaxSegments: a.MaxSegments,
		EdgeSigma:   a.EdgeSigma,
	}
}

// SegmentsResult is the image_detect_segments tool response.
type SegmentsResult struct {
	// Count is the number of detected segments.
	Count int `json:"count"`

	// Segments are the detections, ordered by decreasing Hough strength.
	Segments []geom.Segment `json:"segments"`
}

func (s *Server) handleImageDetectSegments(args json.RawMessage) (interface{}, error) {
	var a detectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	segs := detection.Segments(img, a.detectionOptions())
	return &SegmentsResult{Count: len(segs), Segments: segs}, nil
}

// === Vanishing Point Estimation Handlers ===

type estimationArgs struct {
	detectionArgs
	InlierThreshold float64 `json:"inlier_threshold"`
	MinSupport      int     `json:"min_support"`
	MinClusterSize  int     `json:"min_cluster_size"`
	SampleBudget    int     `json:"sample_budget"`
	RandomSeed      int64   `json:"random_seed"`
}

// vanishOptions converts the JSON arguments to pipeline options. Zero values
// stay zero; the pipeline fills them from its defaults.
func (a estimationArgs) vanishOptions() vanish.Options {
	return vanish.Options{
		InlierThreshold:     a.InlierThreshold,
		MinSupport:          a.MinSupport,
		MinClusterSize:      a.MinClusterSize,
		SampleBudget:        a.SampleBudget,
		RandomSeed:          a.RandomSeed,
		PreselectHypotheses: true,
	}
}

func (s *Server) handleImageFindVanishingPoints(args json.RawMessage) (interface{}, error) {
	var a estimationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	segs := detection.Segments(img, a.detectionOptions())
	return vanish.FindVanishingPoints(segs, a.vanishOptions())
}

// HorizonResult is the image_find_horizon tool response.
type HorizonResult struct {
	// Horizon is the estimated line in slope-intercept pixel form.
	Horizon horizon.Line `json:"horizon"`

	// VanishingPoints are the finite estimated points the line was derived
	// from. Empty when estimation failed and the line is the flat fallback.
	VanishingPoints []geom.Point `json:"vanishing_points"`
}

func (s *Server) handleImageFindHorizon(args json.RawMessage) (interface{}, error) {
	var a estimationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	segs := detection.Segments(img, a.detectionOptions())
	vps := finiteVanishingPoints(segs, a.vanishOptions())

	bounds := img.Bounds()
	principal := geom.Point{X: float64(bounds.Dx() / 2), Y: float64(bounds.Dy() / 2)}
	return &HorizonResult{
		Horizon:         horizon.FindHorizon(vps, principal, nil),
		VanishingPoints: vps,
	}, nil
}

// === Rendering Handlers ===

type renderClustersArgs struct {
	estimationArgs
	Thickness   int  `json:"thickness"`
	PointRadius int  `json:"point_radius"`
	DrawHorizon bool `json:"draw_horizon"`
}

func (s *Server) handleImageRenderClusters(args json.RawMessage) (interface{}, error) {
	var a renderClustersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Thickness == 0 {
		a.Thickness = 2
	}
	if a.PointRadius == 0 {
		a.PointRadius = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	segs := detection.Segments(img, a.detectionOptions())
	res, err := vanish.FindVanishingPoints(segs, a.vanishOptions())
	if err != nil {
		// Estimation failure is not a rendering failure: show every
		// detected segment as an outlier.
		res = &vanish.Result{Outliers: segs}
	}

	canvas := render.Overlay(img)

	groups := make([][]geom.Segment, len(res.VanishingPoints))
	for i, vp := range res.VanishingPoints {
		groups[i] = vp.Segments
	}
	colors := render.DrawClusters(canvas, groups, a.Thickness)
	render.DrawSegments(canvas, res.Outliers, render.OutlierColor, a.Thickness)
	for i, vp := range res.VanishingPoints {
		if p, ok := vp.Point.Euclidean(); ok {
			render.DrawFittedPoint(canvas, p, colors[i], a.PointRadius)
		}
	}

	if a.DrawHorizon {
		vps := make([]geom.Point, 0, len(res.VanishingPoints))
		for _, vp := range res.VanishingPoints {
			if p, ok := vp.Point.Euclidean(); ok {
				vps = append(vps, p)
			}
		}
		bounds := img.Bounds()
		principal := geom.Point{X: float64(bounds.Dx() / 2), Y: float64(bounds.Dy() / 2)}
		line := horizon.FindHorizon(vps, principal, nil)
		render.DrawHorizon(canvas, line, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, a.Thickness)
	}

	return render.EncodePNG(canvas)
}

// finiteVanishingPoints runs the pipeline and projects the resulting points
// to euclidean coordinates, skipping points at infinity. Estimation failures
// yield an empty slice; downstream horizon fitting has a flat fallback for
// that case.
func finiteVanishingPoints(segs []geom.Segment, opts vanish.Options) []geom.Point {
	res, err := vanish.FindVanishingPoints(segs, opts)
	if err != nil {
		return nil
	}
	vps := make([]geom.Point, 0, len(res.VanishingPoints))
	for _, vp := range res.VanishingPoints {
		if p, ok := vp.Point.Euclidean(); ok {
			vps = append(vps, p)
		}
	}
	return vps
}
