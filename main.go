package main

import (
	"fmt"
	"os"

	"github.com/insightdelivered/paypay-statement-converter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fatalf("Error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
