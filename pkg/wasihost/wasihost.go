// Package wasihost runs the Stokhos WASI guest (cmd/wasm/wasi) inside a
// wazero runtime.
//
// The guest speaks a single-shot JSON protocol: one Request on stdin, one
// Response on stdout.
//
//	stdin:  {"statements": ["num x := 5;", "x + 1"], "seed": 42}
//	stdout: {"results": ["ACK: num x := 5", "OK: x + 1 ==> 6"]}
//	        {"error": "<message>"}    on a malformed request (exit code 1)
//
// A Host compiles the module once; every Run instantiates a fresh guest, so
// runs never share symbol tables.
package wasihost

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Request is the payload written to the guest's stdin.
type Request struct {
	Statements []string `json:"statements"`
	// Seed makes the guest's engine reproducible; nil lets it draw one.
	Seed       *uint64  `json:"seed,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
}

// Response is the payload the guest writes to stdout.
type Response struct {
	Results []string `json:"results,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// EncodeRequest writes req as a single JSON document.
func EncodeRequest(w io.Writer, req Request) error {
	if req.Statements == nil {
		req.Statements = []string{}
	}
	return json.NewEncoder(w).Encode(req)
}

// DecodeResponse reads one Response document.
func DecodeResponse(r io.Reader) (Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for guest diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// Host owns a wazero runtime and the compiled guest module.
type Host struct {
	runtime wazero.Runtime
	module  wazero.CompiledModule
	logger  *slog.Logger
}

// Load reads a guest binary from path and compiles it.
func Load(ctx context.Context, path string, opts ...Option) (*Host, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wasihost: read %s: %w", path, err)
	}
	return New(ctx, bin, opts...)
}

// New compiles the guest binary into a fresh runtime with WASI preview1
// imports.
func New(ctx context.Context, bin []byte, opts ...Option) (*Host, error) {
	h := &Host{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	cfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	h.runtime = wazero.NewRuntimeWithConfig(ctx, cfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, h.runtime)

	module, err := h.runtime.CompileModule(ctx, bin)
	if err != nil {
		_ = h.runtime.Close(ctx)
		return nil, fmt.Errorf("wasihost: compile: %w", err)
	}
	h.module = module
	return h, nil
}

// Run instantiates the guest, feeds it req and returns its response. A
// non-zero exit is an error carrying the guest's message when it sent one.
func (h *Host) Run(ctx context.Context, req Request) (Response, error) {
	var stdin, stdout, stderr bytes.Buffer
	if err := EncodeRequest(&stdin, req); err != nil {
		return Response{}, fmt.Errorf("wasihost: encode request: %w", err)
	}

	config := wazero.NewModuleConfig().
		WithName("").
		WithArgs("stokhos").
		WithStdin(&stdin).
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithRandSource(crand.Reader).
		WithSysWalltime().
		WithSysNanotime()

	mod, err := h.runtime.InstantiateModule(ctx, h.module, config)
	if mod != nil {
		defer mod.Close(ctx)
	}

	var exitCode uint32
	if err != nil {
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) {
			return Response{}, fmt.Errorf("wasihost: run: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		h.logger.Debug("wasi guest stderr", "output", msg)
	}

	resp, decodeErr := DecodeResponse(&stdout)
	if exitCode != 0 {
		if decodeErr == nil && resp.Error != "" {
			return resp, fmt.Errorf("wasihost: guest exited with code %d: %s", exitCode, resp.Error)
		}
		return Response{}, fmt.Errorf("wasihost: guest exited with code %d", exitCode)
	}
	if decodeErr != nil {
		return Response{}, fmt.Errorf("wasihost: %w", decodeErr)
	}
	h.logger.Debug("wasi guest finished", "statements", len(req.Statements), "results", len(resp.Results))
	return resp, nil
}

// Close releases the runtime and the compiled module.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
