//go:build (js && wasm) || wasip1

package evaluator

// init sets WebAssembly-specific defaults for all Evaluators created in this
// process.
//
// Every nested formula reference costs several Go frames, and the wasm
// runtimes impose a much smaller stack than native builds. A lower default
// turns deep formula chains into a stack overflow fault instead of a trap.
func init() {
	defaultMaxDepth = 2000
}
