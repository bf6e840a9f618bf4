// Package app wires application dependencies for the CLI.
//
// It resolves the configuration root, builds the logger, opens the identity
// manager over the file stores and constructs the sign service, exposing
// them via the App struct for commands to use.
package app
