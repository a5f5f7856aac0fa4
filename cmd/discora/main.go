package main

import (
	"os"
)

//go:generate go run ../gen-index --root ../.. --out zz_handlers.go internal/commands internal/events

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
