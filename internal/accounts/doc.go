// Package accounts implements the in-memory credential store model.
//
// A Store is an ordered list of Profiles plus store-level metadata. Each
// Profile holds Sites keyed by the host component of their URL, so a
// profile has at most one credential per host.
//
// # Lookup
//
// Sites are found by substring match against their URL. A query must match
// exactly one site; zero or several matches fail with
// ErrAmbiguousOrMissingSite rather than picking a candidate.
//
// Profiles are found by exact name. An empty name selects the first profile
// flagged as default.
//
// # Mutation
//
// UpdateSite inserts or replaces by host. UpdateProfile replaces the first
// profile with the same name in place and never appends. Both leave the
// receiver untouched on failure.
//
// # Serialization
//
// Marshal produces pretty-printed JSON using the field names of the
// original document format (Url, EncodedPass, Mail, DefaultMail, ...).
// Parse is its inverse and reports ErrMalformedStore.
//
// # Diff
//
// Diff compares two stores structurally and writes one line per mismatch.
// Secret values never appear in the report, only their byte counts.
package accounts
