// Command stokhos evaluates Stokhos statements from the command line.
//
//	stokhos eval 'num x := 5;' 'x * 2'
//	stokhos run program.stk
//	stokhos run --wasm stokhos.wasm - < program.stk
//	stokhos lex 'x + 1'
//	stokhos ast 'if(true, 1, 2)'
//	stokhos funcs --ext stats
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
