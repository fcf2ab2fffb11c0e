package mcpserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oxhq/stereocode/archive"
	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/internal/telemetry"
	"github.com/oxhq/stereocode/primitives"
	"github.com/oxhq/stereocode/stereotype"
)

// Server runs the classify_archive tool over a line-delimited JSON-RPC 2.0
// stdio transport.
//
// Grounded on mcp/server.go's read-decode-dispatch-encode loop, trimmed to
// the single tool this engine exposes (no resources/prompts registry, no
// staging — see the package doc in protocol.go).
type Server struct {
	Primitives *primitives.Table
	Logger     *telemetry.Logger
}

// New returns a Server using table as its built-in or loaded primitive type
// table.
func New(table *primitives.Table, logger *telemetry.Logger) *Server {
	return &Server{Primitives: table, Logger: logger}
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w, until r is exhausted or a read error occurs.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		resp := s.handleLine(line)
		if err := s.write(w, resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *Server) handleLine(line string) ResponseMessage {
	var req RequestMessage
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return ErrorResponse(nil, ParseError, "invalid JSON: "+err.Error())
	}
	if err := ensureVersion(req.JSONRPC); err != nil {
		return ErrorResponse(req.ID, InvalidRequest, err.Error())
	}

	switch req.Method {
	case "tools/list":
		return SuccessResponse(req.ID, toolList())
	case "tools/call":
		return s.handleToolCall(req)
	default:
		return ErrorResponse(req.ID, MethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) write(w io.Writer, resp ResponseMessage) error {
	enc, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if _, err := w.Write(enc); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// toolCallParams is tools/call's params envelope.
type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// classifyArchiveArgs is classify_archive's argument schema.
type classifyArchiveArgs struct {
	XML                      string `json:"xml"`
	MethodsPerClassThreshold int    `json:"methodsPerClassThreshold"`
	ClassesOnly              bool   `json:"classesOnly"`
	MethodsOnly              bool   `json:"methodsOnly"`
}

// classifyArchiveResult is classify_archive's result payload: the annotated
// archive text plus the warnings accumulated while loading it.
type classifyArchiveResult struct {
	Annotated string   `json:"annotated"`
	Warnings  []string `json:"warnings,omitempty"`
}

func toolList() map[string]any {
	return map[string]any{
		"tools": []map[string]any{
			{
				"name":        "classify_archive",
				"description": "Annotate a parsed-source XML archive with method and class stereotypes.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"xml":                      map[string]any{"type": "string", "description": "the archive document, as XML text"},
						"methodsPerClassThreshold": map[string]any{"type": "integer", "description": "large-class method-count cutoff (default 21)"},
						"classesOnly":              map[string]any{"type": "boolean"},
						"methodsOnly":              map[string]any{"type": "boolean"},
					},
					"required": []string{"xml"},
				},
			},
		},
	}
}

func (s *Server) handleToolCall(req RequestMessage) ResponseMessage {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, InvalidParams, "invalid params: "+err.Error())
	}
	if params.Name != "classify_archive" {
		return ErrorResponse(req.ID, MethodNotFound, "unknown tool: "+params.Name)
	}

	var args classifyArchiveArgs
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return ErrorResponse(req.ID, InvalidParams, "invalid arguments: "+err.Error())
	}
	if args.XML == "" {
		return ErrorResponse(req.ID, InvalidParams, "xml argument is required")
	}

	result, err := s.classify(args)
	if err != nil {
		if engineErr, ok := err.(*core.EngineError); ok {
			return ErrorResponse(req.ID, ArchiveMalformed, engineErr.Error())
		}
		return ErrorResponse(req.ID, InternalError, err.Error())
	}
	return SuccessResponse(req.ID, result)
}

func (s *Server) classify(args classifyArchiveArgs) (*classifyArchiveResult, error) {
	arc, err := archive.Load(strings.NewReader(args.XML))
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range arc.Warnings() {
		warnings = append(warnings, w.Error())
	}

	driver := archive.NewDriver(arc, s.Primitives, stereotype.ClassOptions{
		MethodsPerClassThreshold: args.MethodsPerClassThreshold,
	})
	driver.ClassesOnly = args.ClassesOnly
	driver.MethodsOnly = args.MethodsOnly

	classes, err := driver.Run()
	if err != nil {
		return nil, err
	}
	if err := driver.Annotate(classes); err != nil {
		return nil, err
	}

	annotated, err := arc.Serialize()
	if err != nil {
		return nil, err
	}
	return &classifyArchiveResult{Annotated: annotated, Warnings: warnings}, nil
}
