package store

import (
	"fmt"
	"os"
	"runtime"
)

// permissionBits reports whether the host filesystem honours Unix mode bits.
var permissionBits = func() bool {
	switch runtime.GOOS {
	case "windows", "plan9", "js", "wasip1":
		return false
	}
	return true
}

// restrictToOwnerRead applies mode 0400 to path where mode bits are supported
// and does nothing elsewhere.
func restrictToOwnerRead(path string) error {
	if !permissionBits() {
		return nil
	}
	if err := os.Chmod(path, 0o400); err != nil {
		return fmt.Errorf("cannot restrict permissions at %q: %w", path, err)
	}
	return nil
}
