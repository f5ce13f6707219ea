// Package lspserver exposes the engine over the Language Server Protocol:
// one engine.State per open document, advanced with State.Increment on
// every ranged edit instead of reparsing the document from scratch, with
// parse errors republished as diagnostics after each change. A
// whole-document change or a save that carries the text starts a fresh
// State.
package lspserver

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/pegstep/engine"
	"github.com/dhamidi/pegstep/grammar"
)

const lsName = "pegstep"

// Server is a language server for a single fixed grammar and start rule.
// Every open document is parsed against the same grammar.
type Server struct {
	grammar grammar.Grammar
	start   string

	handler protocol.Handler
	server  *server.Server

	docs map[string]*document
}

type document struct {
	state *engine.State
}

// New creates a Server ready to RunStdio against the given grammar.
func New(g grammar.Grammar, start string) *Server {
	s := &Server{
		grammar: g,
		start:   start,
		docs:    make(map[string]*document),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio runs the server over stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: lsName,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	doc := &document{state: engine.New(s.grammar, s.start, params.TextDocument.Text)}
	drive(doc.state)
	s.docs[path] = doc

	s.publishDiagnostics(ctx, params.TextDocument.URI, doc.state)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	doc, ok := s.docs[path]
	if !ok {
		return nil
	}

	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			content := doc.state.Input()
			at := positionToOffset(content, change.Range.Start)
			end := positionToOffset(content, change.Range.End)
			doc.state.Increment(change.Text, at, end-at)
		case protocol.TextDocumentContentChangeEventWhole:
			doc.state = engine.New(s.grammar, s.start, change.Text)
		}
	}
	drive(doc.state)

	s.publishDiagnostics(ctx, params.TextDocument.URI, doc.state)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(s.docs, path)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	doc := &document{state: engine.New(s.grammar, s.start, *params.Text)}
	drive(doc.state)
	s.docs[path] = doc

	s.publishDiagnostics(ctx, params.TextDocument.URI, doc.state)
	return nil
}

func drive(s *engine.State) {
	for !s.Done() {
		s.Advance()
	}
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, state *engine.State) {
	ctx.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: buildDiagnostics(state),
	})
}

func buildDiagnostics(state *engine.State) []protocol.Diagnostic {
	messages, pos := state.Errors()
	if len(messages) == 0 {
		return []protocol.Diagnostic{}
	}

	line, column := state.PosToLineColumn(pos)
	at := protocol.Position{Line: uint32(line - 1), Character: uint32(column - 1)}
	severity := protocol.DiagnosticSeverityError

	diagnostics := make([]protocol.Diagnostic, 0, len(messages))
	for _, message := range messages {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: at, End: at},
			Severity: &severity,
			Source:   stringPtr(lsName),
			Message:  message,
		})
	}
	return diagnostics
}

// positionToOffset converts an LSP Position into a byte offset into
// content. Character is treated as a byte offset within its line — this
// server does not attempt full UTF-16-code-unit accounting.
func positionToOffset(content string, pos protocol.Position) int {
	lines := strings.Split(content, "\n")
	line := int(pos.Line)
	if line >= len(lines) {
		return len(content)
	}

	offset := 0
	for i := 0; i < line; i++ {
		offset += len(lines[i]) + 1
	}

	character := int(pos.Character)
	if character > len(lines[line]) {
		character = len(lines[line])
	}
	return offset + character
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
