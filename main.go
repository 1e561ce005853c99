// Package main starts the model-gateway application.
package main

import (
	"github.com/subosito/gotenv"
	"github.com/temirov/model-gateway/cmd"
)

// main is the entry point for model-gateway.
func main() {
	_ = gotenv.Load()

	cmd.Execute()
}
