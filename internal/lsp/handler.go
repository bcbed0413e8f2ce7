// Package lsp adapts the interpreter's parser and resolver into a
// diagnostics-only language server: it has nothing to offer for
// completion or semantic tokens since the language carries no types
// and no declarations beyond nested lambdas, so the handler's whole
// job is "parse and resolve on every edit, publish what broke."
package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"blc/internal/resolve"
	"blc/internal/syntax"
)

// Handler implements the glsp protocol.Handler callbacks for the
// interpreter's language. One Handler instance is long-lived for the
// life of the server process and is shared across every connected
// editor buffer.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates an empty handler ready to be wired into a
// protocol.Handler.
func NewHandler() *Handler {
	return &Handler{content: make(map[string]string)}
}

// Initialize advertises the server's capabilities: full-document sync
// only, no completion or semantic tokens provider.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

// SetTrace is wired but unused: the server has no trace verbosity
// separate from its ordinary debug log.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened %s\n", params.TextDocument.URI)
	return h.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed %s\n", params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	return h.publishDiagnostics(ctx, params.TextDocument.URI, change.Text)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed %s\n", params.TextDocument.URI)
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnosticsFor(path, text))
	return nil
}

// diagnosticsFor parses and resolves text, returning the one
// diagnostic the first failure produced, or an empty slice when the
// program is well formed. There is no later compile stage that could
// surface a second error in the same pass.
func diagnosticsFor(path, text string) []protocol.Diagnostic {
	prog, err := syntax.ParseSource(path, text)
	if err != nil {
		return []protocol.Diagnostic{diagnosticFromParticiple(err)}
	}
	if _, err := resolve.Resolve(path, prog); err != nil {
		return []protocol.Diagnostic{diagnosticFromResolve(err)}
	}
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("failed to marshal diagnostics:", err)
		return
	}
	log.Println("sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
