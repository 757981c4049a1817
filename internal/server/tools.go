package server

import "github.com/ironsheep/photo-edit-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func enumProp(description string, values []string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        values,
		"description": description,
	}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	sourceName := stringProp("Name of the stored image to read")
	destName := stringProp("Name to store the result under. Replaces any image with that name")

	return []Tool{
		// Store Management
		{
			Name:        "image_load",
			Description: "Load an image file (PNG, JPEG, GIF, BMP, TIFF, WebP or plain PPM) and store it under a name.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"name": stringProp("Name to store the image under"),
			}, "path", "name"),
		},
		{
			Name:        "image_save",
			Description: "Write a stored image to a file. The extension selects the format.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": sourceName,
				"path": stringProp("Absolute path of the file to write"),
			}, "name", "path"),
		},
		{
			Name:        "image_export",
			Description: "Return a stored image as base64-encoded PNG.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": sourceName,
			}, "name"),
		},
		{
			Name:        "image_list",
			Description: "List the names of all stored images.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_info",
			Description: "Get the width, height and max channel value of a stored image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": sourceName,
			}, "name"),
		},
		{
			Name:        "image_history",
			Description: "List every edit applied to the store, oldest first.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Edit Operations
		{
			Name:        "image_transform",
			Description: "Apply a per-pixel color transform (greyscale components or sepia).",
			InputSchema: objectSchema(map[string]interface{}{
				"name":      sourceName,
				"dest":      destName,
				"transform": enumProp("Transform to apply", imaging.TransformNames()),
			}, "name", "dest", "transform"),
		},
		{
			Name:        "image_filter",
			Description: "Apply a convolution filter (blur or sharpen).",
			InputSchema: objectSchema(map[string]interface{}{
				"name":      sourceName,
				"dest":      destName,
				"filter":    enumProp("Filter to apply", imaging.FilterNames()),
				"edge_mode": enumProp("Which border neighbors take part. Default clip", []string{"clip", "legacy"}),
			}, "name", "dest", "filter"),
		},
		{
			Name:        "image_brightness",
			Description: "Add a constant to every channel of every pixel. Negative values darken.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":  sourceName,
				"dest":  destName,
				"delta": intProp("Amount added to each channel"),
			}, "name", "dest", "delta"),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image left-to-right (horizontal) or top-to-bottom (vertical).",
			InputSchema: objectSchema(map[string]interface{}{
				"name": sourceName,
				"dest": destName,
				"axis": enumProp("Flip direction", []string{"horizontal", "vertical"}),
			}, "name", "dest", "axis"),
		},
		{
			Name:        "image_mosaic",
			Description: "Partition an image into regions around random seeds and paint each region its average color.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":  sourceName,
				"dest":  destName,
				"seeds": intProp("Number of regions (positive)"),
			}, "name", "dest", "seeds"),
		},

		// Analysis
		{
			Name:        "image_histogram",
			Description: "Count pixels per grey level as computed by a greyscale transform.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":    sourceName,
				"channel": enumProp("Greyscale transform that computes the level", histogramChannels()),
			}, "name", "channel"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a pixel.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": sourceName,
				"row":  intProp("Row (0-based, from top)"),
				"col":  intProp("Column (0-based, from left)"),
			}, "name", "row", "col"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "List the most frequent exact colors of an image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":  sourceName,
				"count": intProp("Number of colors to return. Default 5"),
			}, "name"),
		},
	}
}

// histogramChannels lists the transforms that have a single channel value.
func histogramChannels() []string {
	var names []string
	for _, name := range imaging.TransformNames() {
		t, err := imaging.ParseTransform(name)
		if err == nil && t.Greyscale() {
			names = append(names, name)
		}
	}
	return names
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
