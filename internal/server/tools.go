package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

const offsetDescription = "Omit or null to center, true or \"far\" for the right/bottom edge, " +
	"an integer for pixels from the left/top edge (negative counts from the right/bottom edge)"

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file",
	}
}

func offsetProperty(axis string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"integer", "string", "boolean", "null"},
		"description": axis + " offset. " + offsetDescription,
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// editSchema builds the input schema shared by every editing tool: the source
// path, the operation's own properties and the output options.
func editSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{
		"path": pathProperty(),
		"output": map[string]interface{}{
			"type":        "string",
			"description": "Optional path to save the result to. The format follows its extension. When omitted the result is returned as base64",
		},
		"format": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff"},
			"description": "Format for the base64 result. Defaults to the source format",
		},
		"quality": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     100,
			"default":     100,
			"description": "Encoding quality (JPEG only)",
		},
	}
	for k, v := range props {
		all[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   append([]string{"path"}, required...),
	}
}

func resizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"width":  integerProperty("Target width in pixels. Omit or 0 to derive it from the height"),
		"height": integerProperty("Target height in pixels. Omit or 0 to derive it from the width"),
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"auto", "none", "width", "height", "inverse", "remove", "fill", "top_remove"},
			"default":     "auto",
			"description": "How the target box is applied: auto fits inside, inverse covers, none stretches, remove covers then crops around the center, top_remove does the same but crops wide overflow from the left edge, fill letterboxes on a transparent canvas",
		},
	}
}

func cropProperties() map[string]interface{} {
	return map[string]interface{}{
		"width":  integerProperty("Crop width in pixels. 0 or larger than the image keeps the full width"),
		"height": integerProperty("Crop height in pixels. 0 or larger than the image keeps the full height"),
		"x":      offsetProperty("Horizontal"),
		"y":      offsetProperty("Vertical"),
	}
}

func rotateProperties() map[string]interface{} {
	return map[string]interface{}{
		"degrees": integerProperty("Clockwise rotation in degrees. Any value is accepted and normalized into (-180, 180]"),
	}
}

func flipProperties() map[string]interface{} {
	return map[string]interface{}{
		"direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"horizontal", "vertical"},
			"description": "horizontal mirrors left to right; anything else mirrors top to bottom",
		},
	}
}

func sharpenProperties() map[string]interface{} {
	return map[string]interface{}{
		"amount": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     100,
			"description": "Sharpening strength, clamped to 1-100",
		},
	}
}

func reflectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"height": integerProperty("Reflection height in pixels. Omit, 0 or larger than the image uses the image height"),
		"opacity": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     100,
			"default":     100,
			"description": "Opacity of the reflection line next to the image",
		},
		"fade_in": map[string]interface{}{
			"type":        "boolean",
			"default":     false,
			"description": "When true the reflection is strongest next to the image and fades away; when false it fades in",
		},
	}
}

func watermarkProperties() map[string]interface{} {
	return map[string]interface{}{
		"watermark": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the watermark image",
		},
		"x": offsetProperty("Horizontal"),
		"y": offsetProperty("Vertical"),
		"opacity": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     100,
			"default":     100,
			"description": "Watermark opacity",
		},
	}
}

func backgroundProperties() map[string]interface{} {
	return map[string]interface{}{
		"color": map[string]interface{}{
			"type":        "string",
			"description": "Hex color such as #fff or #336699",
		},
		"opacity": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     100,
			"default":     100,
			"description": "Background opacity",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	operation := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"op": map[string]interface{}{
				"type": "string",
				"enum": []string{"resize", "crop", "rotate", "flip", "sharpen", "reflection", "watermark", "background"},
			},
		},
		"required":             []string{"op"},
		"additionalProperties": true,
	}

	return []Tool{
		// Source Information
		{
			Name:        "image_load",
			Description: "Open an image file and return its resolved path, dimensions, format and mime type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Geometry
		{
			Name:        "image_resize",
			Description: "Resize an image. Missing dimensions are derived from the aspect ratio; the mode controls fitting, covering and letterboxing.",
			InputSchema: editSchema(resizeProperties()),
		},
		{
			Name:        "image_crop",
			Description: "Crop a region of the given size. Offsets may center the region, anchor it to the far edge, or place it at explicit pixels.",
			InputSchema: editSchema(cropProperties(), "width", "height"),
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image clockwise. Non right-angle rotations grow the canvas and leave transparent corners.",
			InputSchema: editSchema(rotateProperties(), "degrees"),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally or vertically.",
			InputSchema: editSchema(flipProperties(), "direction"),
		},

		// Effects
		{
			Name:        "image_sharpen",
			Description: "Sharpen an image with a 3x3 convolution.",
			InputSchema: editSchema(sharpenProperties(), "amount"),
		},
		{
			Name:        "image_reflection",
			Description: "Append a mirrored reflection below the image with a graded opacity.",
			InputSchema: editSchema(reflectionProperties()),
		},
		{
			Name:        "image_watermark",
			Description: "Draw another image over this one. The watermark is kept inside the canvas.",
			InputSchema: editSchema(watermarkProperties(), "watermark"),
		},
		{
			Name:        "image_background",
			Description: "Flatten the image onto a solid background color.",
			InputSchema: editSchema(backgroundProperties(), "color"),
		},

		// Output
		{
			Name:        "image_render",
			Description: "Re-encode an image without editing it, either to a file (output) or as base64 in the requested format.",
			InputSchema: editSchema(nil),
		},
		{
			Name:        "image_edit",
			Description: "Apply an ordered list of operations to one image and emit a single result. Each operation object takes an op name plus the same properties as the matching single-operation tool.",
			InputSchema: editSchema(map[string]interface{}{
				"operations": map[string]interface{}{
					"type":        "array",
					"items":       operation,
					"minItems":    1,
					"description": "Operations applied in order; the first failure aborts the pipeline",
				},
			}, "operations"),
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
