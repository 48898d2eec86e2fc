package workflows

import (
	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// deliver copies password to the clipboard unless reveal is set, in which
// case the caller shows it. It returns whether the clipboard was used.
func deliver(password []byte, reveal bool) (bool, error) {
	if reveal {
		return false, nil
	}
	if err := writeClipboard(string(password)); err != nil {
		return false, err
	}
	return true, nil
}
