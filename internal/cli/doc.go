// Package cli holds the pieces shared by emsctl commands: the common
// flags and the configuration they select, interactive prompts, progress
// spinners and the translation of client errors into messages that tell
// the user what to do next.
package cli
