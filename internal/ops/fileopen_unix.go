//go:build !windows

package ops

import (
	stderrors "errors"
	"os"
	"syscall"

	"github.com/azriel91/tears/internal/errors"
)

// openNoFollow is the shared raw open. O_NOFOLLOW guards the final path
// component against a symlink placed after ValidatePath ran; directory
// components are covered by ValidatePath's no-subdirectory rule. O_CLOEXEC
// keeps the fd from leaking across exec.
func openNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := syscall.Open(path, flag|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, uint32(perm))
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}

// openFileNoFollow opens a file for writing, refusing symlinks.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := openNoFollow(path, flag, perm)
	if stderrors.Is(err, syscall.ELOOP) {
		return nil, errors.NewInvalidRequest("cannot write to symlink")
	}
	return f, err
}

// openFileNoFollowRead opens a file for reading, refusing symlinks.
func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := openNoFollow(path, syscall.O_RDONLY, 0)
	switch {
	case stderrors.Is(err, syscall.ELOOP):
		return nil, errors.NewInvalidRequest("cannot read from symlink")
	case stderrors.Is(err, syscall.ENOENT):
		return nil, errors.NewFileNotFound(path)
	}
	return f, err
}
