// Package audit provides audit trail logging for Kete operations.
//
// Key generation and every add, get and remove is recorded in an audit log
// next to the vault. The log records who touched which service and when. It
// never records passwords or key material.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line), by
// default at audit.jsonl in the vault's directory.
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Local username
//   - Operation name
//   - Service name and vault ID where relevant
//
// # Usage
//
//	entry := audit.NewEntry(audit.OpAdd)
//	entry.Service = "github"
//	audit.Log(logPath, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
