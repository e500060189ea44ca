package rename

import "os"

// SetRenameFunc replaces the rename primitive and returns a restore func.
func SetRenameFunc(fn func(oldpath, newpath string) error) func() {
	renameFile = fn
	return func() { renameFile = os.Rename }
}
