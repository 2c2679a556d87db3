//go:build wasip1

// Command stokhos-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// runtime that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "statements": ["num x := 5;", "x + 1"], "seed": 42, "extensions": ["stats"] }
//	stdout: { "results": ["ACK: num x := 5", "OK: x + 1 ==> 6"] }   on success
//	        { "error": "<message>" }                                on failure (exit code 1)
//
// Statement errors are reported as "ERROR: ..." results, not as failures.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o stokhos.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"statements":["1 + 2"]}' | wasmtime stokhos.wasm
//
// Usage from the stokhos CLI (wazero):
//
//	stokhos run --wasm stokhos.wasm program.stk
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext"
)

type request struct {
	Statements []string `json:"statements"`
	Seed       *uint64  `json:"seed"`
	Extensions []string `json:"extensions"`
}

type response struct {
	Results []string `json:"results,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func writeResponse(r response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	var opts []engine.Option
	if req.Seed != nil {
		opts = append(opts, engine.WithSeed(*req.Seed))
	}
	if len(req.Extensions) > 0 {
		defs, err := ext.Lookup(req.Extensions...)
		if err != nil {
			writeResponse(response{Error: err.Error()}, 1)
		}
		opts = append(opts, engine.WithFunctions(defs...))
	}

	results := engine.New(opts...).ProcessAll(context.Background(), req.Statements)
	writeResponse(response{Results: results}, 0)
}
