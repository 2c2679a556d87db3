//go:build js && wasm

// Command stokhos-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `stokhos` object with the following API:
//
//	stokhos.version()                 → string
//	stokhos.session(seed?)            → { process(line) → string, reset() }
//	stokhosProcess(lines[, seed])     → string[]
//
// stokhosProcess runs the lines in a fresh engine and returns one outcome
// line per non-blank input. A session keeps its symbol table between calls.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o stokhos.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	require('./wasm_exec.js')
//	const go = new Go()
//	const { instance } = await WebAssembly.instantiate(fs.readFileSync('stokhos.wasm'), go.importObject)
//	go.run(instance)
//	console.log(stokhosProcess(['num x := 5;', 'x * 2'])) // ['ACK: num x := 5', 'OK: x * 2 ==> 10']
package main

import (
	"context"
	"syscall/js"

	"github.com/sandrolain/gostokhos"
	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

// newEngine builds an engine with every extension, seeded when the optional
// argument at position i is a number.
func newEngine(args []js.Value, i int) *engine.Engine {
	opts := []engine.Option{ext.WithAll()}
	if len(args) > i && args[i].Type() == js.TypeNumber {
		opts = append(opts, engine.WithSeed(uint64(args[i].Int())))
	}
	return engine.New(opts...)
}

// jsProcess implements stokhosProcess(lines[, seed]) → string[].
func jsProcess(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		jsThrow("stokhosProcess requires 1 argument: lines (array of strings)")
	}
	n := args[0].Length()
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = args[0].Index(i).String()
	}

	results := newEngine(args, 1).ProcessAll(context.Background(), lines)
	out := make([]interface{}, len(results))
	for i, r := range results {
		out[i] = r
	}
	return js.ValueOf(out)
}

// jsSession implements stokhos.session(seed?) → { process(line), reset() }.
func jsSession(_ js.Value, args []js.Value) interface{} {
	e := newEngine(args, 0)

	process := js.FuncOf(func(_ js.Value, innerArgs []js.Value) interface{} {
		if len(innerArgs) < 1 {
			jsThrow("session.process requires 1 argument: line (string)")
		}
		return e.Process(innerArgs[0].String())
	})
	reset := js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
		e.Table().Clear()
		return nil
	})

	return js.ValueOf(map[string]interface{}{
		"process": process,
		"reset":   reset,
	})
}

func main() {
	api := map[string]interface{}{
		"session": js.FuncOf(jsSession),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gostokhos.Version()
		}),
	}
	js.Global().Set("stokhos", js.ValueOf(api))
	js.Global().Set("stokhosProcess", js.FuncOf(jsProcess))

	// Block forever: the JS event loop owns execution from here.
	select {}
}
