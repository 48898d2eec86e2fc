// Package gateway converts between an in-memory accounts.Store and its
// encrypted on-disk form.
//
// Encryption is delegated to a Cipher. Two are provided:
//
//   - GPG runs an external OpenPGP tool as a subprocess:
//     `<tool> --decrypt <path>` and `<tool> --encrypt --armor -r <recipient>`.
//   - Box seals the document with NaCl anonymous boxes and PEM armor, for
//     machines without an OpenPGP setup.
//
// # Durability
//
// Encrypt never writes the target path directly. The ciphertext is written
// to a temporary file in the same directory, synced, and renamed over the
// target. A failure at any step leaves the previous document in place; a
// temporary file that was already created is kept for inspection.
//
// # Concurrency
//
// There is no locking. When two processes rewrite the same path, the last
// rename wins.
package gateway
