// Command bimapper inspects mapping declarations between the sample store and
// warehouse types, optionally overridden by a YAML declaration file.
//
//	bimapper check [--decls file]
//	bimapper explain store.Customer warehouse.Customer
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
