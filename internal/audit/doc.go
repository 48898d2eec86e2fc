// Package audit records what baccounts did to the store.
//
// Every command that reads a secret or changes the store appends one line
// to a per-user log. Entries name the operation, profile and host but never
// a password.
//
// # Log Format
//
// The audit log is stored as JSON Lines at:
//
//	$XDG_DATA_HOME/baccounts/audit.jsonl
//
// Each entry contains:
//   - A random ID and a UTC timestamp with microseconds
//   - The local user name
//   - Operation name
//   - Operation-specific details (profile, host, recipient, counts)
//
// # Usage
//
//	entry := audit.NewEntry("generate")
//	entry.Profile = "alice"
//	entry.Host = "mail.example.com"
//	audit.Log(settings.AuditPath, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the operation continues
// without error.
//
// # Reading Logs
//
// ReadEntries parses the log for `baccounts log`. Malformed lines are
// skipped to tolerate partial writes.
package audit
