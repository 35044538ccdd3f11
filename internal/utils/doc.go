// Package utils provides shared helpers for the Kete CLI.
//
// # Path Utilities
//
//   - ExpandHome: resolves a leading ~ in configured paths
//   - FormatList: renders a bulleted list for human-readable output
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # I/O Utilities
//
//   - ReadSecret: reads a password piped on stdin
//
// # Terminal Utilities
//
//   - ReadPassword / ReadPasswordConfirmed: hidden-input prompts
//   - IsTerminal: checks whether stdin is a terminal
package utils
