package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/codec"
	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_mosaic").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := s.logger.WithFields(logrus.Fields{
		"tool":    params.Name,
		"elapsed": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	entry.Debug("Tool executed")

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
//  3. Parses operation names into imaging values
//  4. Calls the store
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Store Management
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_export":
		return s.handleImageExport(args)
	case "image_list":
		return s.handleImageList()
	case "image_info":
		return s.handleImageInfo(args)
	case "image_history":
		return s.handleImageHistory()

	// Edit Operations
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_brightness":
		return s.handleImageBrightness(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_mosaic":
		return s.handleImageMosaic(args)

	// Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

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

// === Store Management Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := codec.Read(a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	if err := s.store.Load(buf); err != nil {
		return nil, err
	}
	return buf.Info(), nil
}

type imageSaveArgs struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SaveResult reports where an image was written.
type SaveResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if err := codec.Write(a.Path, buf); err != nil {
		return nil, err
	}
	return &SaveResult{Name: a.Name, Path: a.Path}, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

// ExportResult contains a stored image encoded as base64 PNG.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	data, err := codec.EncodeBase64PNG(buf)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Width:       buf.Width(),
		Height:      buf.Height(),
		ImageBase64: data,
		MimeType:    "image/png",
	}, nil
}

// ListResult contains the names of every stored image.
type ListResult struct {
	Images []string `json:"images"`
}

func (s *Server) handleImageList() (interface{}, error) {
	return &ListResult{Images: s.store.Names()}, nil
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.Info(a.Name)
}

// HistoryResult lists the edits applied to the store.
type HistoryResult struct {
	Edits []imaging.Edit `json:"edits"`
}

func (s *Server) handleImageHistory() (interface{}, error) {
	return &HistoryResult{Edits: s.store.History()}, nil
}

// === Edit Operation Handlers ===

type imageTransformArgs struct {
	Name      string `json:"name"`
	Dest      string `json:"dest"`
	Transform string `json:"transform"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := imaging.ParseTransform(a.Transform)
	if err != nil {
		return nil, err
	}
	return s.store.ApplyTransform(a.Name, a.Dest, t)
}

type imageFilterArgs struct {
	Name     string `json:"name"`
	Dest     string `json:"dest"`
	Filter   string `json:"filter"`
	EdgeMode string `json:"edge_mode"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	edge, err := imaging.ParseEdgeMode(a.EdgeMode)
	if err != nil {
		return nil, err
	}
	return s.store.ApplyFilter(a.Name, a.Dest, f.WithEdge(edge))
}

type imageBrightnessArgs struct {
	Name  string `json:"name"`
	Dest  string `json:"dest"`
	Delta int    `json:"delta"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.AdjustBrightness(a.Name, a.Dest, a.Delta)
}

type imageFlipArgs struct {
	Name string `json:"name"`
	Dest string `json:"dest"`
	Axis string `json:"axis"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	axis, err := imaging.ParseFlipAxis(a.Axis)
	if err != nil {
		return nil, err
	}
	return s.store.Flip(a.Name, a.Dest, axis)
}

type imageMosaicArgs struct {
	Name  string `json:"name"`
	Dest  string `json:"dest"`
	Seeds int    `json:"seeds"`
}

func (s *Server) handleImageMosaic(args json.RawMessage) (interface{}, error) {
	var a imageMosaicArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.ApplyMosaic(a.Name, a.Dest, a.Seeds)
}

// === Analysis Handlers ===

type imageHistogramArgs struct {
	Name    string `json:"name"`
	Channel string `json:"channel"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := imaging.ParseTransform(a.Channel)
	if err != nil {
		return nil, err
	}
	return s.store.Histogram(a.Name, t)
}

type imageSampleColorArgs struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.SampleColor(a.Name, a.Row, a.Col)
}

type imageDominantColorsArgs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	return s.store.DominantColors(a.Name, a.Count)
}
