package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool: all of them
// operate on an image file identified by its path.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// detectionProperties describes the segment detection knobs shared by the
// detection, estimation, and rendering tools.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"min_length": map[string]interface{}{
			"type":        "number",
			"description": "Shortest segment to keep, as a fraction of the image diagonal (default 0.05)",
			"default":     0.05,
		},
		"max_length": map[string]interface{}{
			"type":        "number",
			"description": "Longest segment to keep, as a fraction of the image diagonal (default 1.0)",
			"default":     1.0,
		},
		"max_segments": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of segments to detect, strongest first (default 50)",
			"default":     50,
		},
		"edge_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Sigma for automatic Canny threshold selection (default 0.33)",
			"default":     0.33,
		},
	}
}

// estimationProperties describes the vanishing point pipeline knobs shared by
// the estimation, horizon, and rendering tools.
func estimationProperties() map[string]interface{} {
	props := detectionProperties()
	props["inlier_threshold"] = map[string]interface{}{
		"type":        "number",
		"description": "Consistency cutoff as a fraction of segment length (default 0.05)",
		"default":     0.05,
	}
	props["min_support"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum inlier count for a hypothesis to be kept (default 4)",
		"default":     4,
	}
	props["min_cluster_size"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum segments per reported vanishing point (default 2)",
		"default":     2,
	}
	props["sample_budget"] = map[string]interface{}{
		"type":        "integer",
		"description": "Hypotheses to sample when the segment count is large (default 500)",
		"default":     500,
	}
	props["random_seed"] = map[string]interface{}{
		"type":        "integer",
		"description": "Seed for hypothesis sampling; identical inputs and seeds reproduce exactly (default 0)",
		"default":     0,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Caches the decoded image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Edge and Segment Detection
		{
			Name:        "image_edge_detect",
			Description: "Return a Canny edge map of the image as base64 PNG, white edges on black. Thresholds of 0 are chosen automatically from the luminance median.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low hysteresis threshold for Canny edge detection; 0 selects automatically",
						"default":     0,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High hysteresis threshold for Canny edge detection; 0 selects automatically",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_segments",
			Description: "Detect straight line segments in the image with a Hough transform over its edge map. Returns segments ordered by strength.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"path": pathProperty(),
				}, detectionProperties()),
				"required": []string{"path"},
			},
		},

		// Vanishing Point Estimation
		{
			Name:        "image_find_vanishing_points",
			Description: "Detect line segments and estimate the image's vanishing points. Returns each point in homogeneous coordinates with its supporting segments, plus outlier segments.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"path": pathProperty(),
				}, estimationProperties()),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_find_horizon",
			Description: "Estimate the image's horizon line from its vanishing points, in slope-intercept pixel form. Degrades to a flat line through the image center when no vanishing points are found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"path": pathProperty(),
				}, estimationProperties()),
				"required": []string{"path"},
			},
		},

		// Rendering
		{
			Name:        "image_render_clusters",
			Description: "Render the vanishing point analysis onto the image: segment clusters in distinct colors, outliers in gray, estimated points projected to the border when off-frame, and optionally the horizon line. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"path": pathProperty(),
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Segment stroke thickness in pixels (default 2)",
						"default":     2,
					},
					"point_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Radius of rendered vanishing point markers in pixels (default 5)",
						"default":     5,
					},
					"draw_horizon": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to draw the estimated horizon line",
						"default":     false,
					},
				}, estimationProperties()),
				"required": []string{"path"},
			},
		},
	}
}

// mergeProperties combines schema property maps; later maps win on key
// collisions.
func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
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
