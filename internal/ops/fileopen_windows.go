//go:build windows

package ops

import (
	"os"

	"github.com/azriel91/tears/internal/errors"
)

// Windows has no O_NOFOLLOW; ValidatePath's Lstat symlink check is the
// only guard on this platform.

func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, err
	}
	return f, nil
}
