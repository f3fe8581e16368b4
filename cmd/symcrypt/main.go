package main

import (
	"errors"
	"os"

	"github.com/saylorsolutions/symcrypt/cmd/internal"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		internal.EchoTo(os.Stdout, "symcrypt %s", version)
		return
	}
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, ErrUsage) {
			internal.Echo("Run 'symcrypt --help' for usage information.")
		}
		internal.Fatal("Error: %v", err)
	}
}
