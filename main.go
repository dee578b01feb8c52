// ABOUTME: Entry point for the produk CLI
// ABOUTME: Terminal client for the product-management portal

package main

import (
	"fmt"
	"os"

	"github.com/produkportal/produk-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
