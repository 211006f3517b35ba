package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/echodeck/echodeck/cmd"
)

func main() {
	// Load a local .env if present; real env vars win.
	_ = godotenv.Load()

	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
