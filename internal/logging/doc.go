// Package logger provides leveled console logging for baccounts commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed with a colored level tag.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only critical warnings are shown; command errors reach the
// user through the error returned from RunE.
//
// # Usage
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Decrypting %s", path)
//
// The root command builds the logger in its PersistentPreRun and passes it
// explicitly to workflows and the gateway.
package logger
