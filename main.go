// =============================================================================
// Point Description Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the descparse CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   descparse process FILE...     - Rewrite point descriptions
//   descparse preprocess FILE...  - Apply the replacement dictionary only
//   descparse classify DESC...    - Try descriptions on the command line
//   descparse validate [FILE...]  - Check configuration and point files
//   descparse version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core logic (vocabulary, description engine, converter)
//   - pkg/       : Shared file naming utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/point-description-parser/cmd"
)

func main() {
	cmd.Execute()
}
