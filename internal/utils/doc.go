// Package utils provides shared utility functions for baccounts.
//
// # Filesystem Utilities
//   - ExpandHome: resolves a leading ~ in configured paths
//   - FileExists: checks for a regular file
//
// # System Utilities
//   - GetUsername: returns the current system username
//
// # String Utilities
//   - FormatPaths: formats file paths for human-readable output
//   - IsValidEmail: loose check for account names
//   - NormalizeURL: adds https:// to bare hosts
//
// # Password Utilities
//   - GeneratePassword: random passwords over the alnum or ascii charset
//   - CheckPassword, ReadNewPassword: validation of typed passwords
//
// # I/O Utilities
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//   - ReadPassword: hidden input from the TTY
//   - WriteToTTY, ClearScreen, WaitForEnterFromTTY: revealing a password
//     on the terminal and wiping it afterwards
package utils
