// Package validation checks user-supplied paths before the converter opens
// or writes anything.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	cerrors "github.com/FocuswithJustin/treebank/core/errors"
)

// Limits applied to inputs.
const (
	// MaxFileSize is the largest treebank file accepted (256 MB).
	MaxFileSize = 256 << 20
	// MaxFilenameLength is the longest file name accepted.
	MaxFilenameLength = 255
	// MaxPathLength is the longest path accepted.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrNotRegular       = errors.New("not a regular file")
	ErrTooLarge         = errors.New("file too large")
)

func invalid(field, value string, err error) error {
	return &cerrors.ValidationError{Field: field, Value: value, Message: err.Error(), Err: err}
}

// ValidatePath checks length and rejects NUL and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return invalid("path", path, ErrEmptyPath)
	}
	if len(path) > MaxPathLength {
		return invalid("path", path, ErrPathTooLong)
	}
	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return invalid("path", path, fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter))
		}
	}
	return nil
}

// ValidateFilename checks a single path element.
func ValidateFilename(filename string) error {
	if filename == "" {
		return invalid("filename", filename, ErrInvalidFilename)
	}
	if len(filename) > MaxFilenameLength {
		return invalid("filename", filename, ErrFilenameTooLong)
	}
	if filename == "." || filename == ".." {
		return invalid("filename", filename, fmt.Errorf("%w: reserved name", ErrInvalidFilename))
	}
	if strings.ContainsAny(filename, "/\\") {
		return invalid("filename", filename, fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename))
	}
	for _, r := range filename {
		if r == 0 || unicode.IsControl(r) {
			return invalid("filename", filename, fmt.Errorf("%w: control character not allowed", ErrInvalidFilename))
		}
	}
	return nil
}

// ValidateInputFile checks that path names a readable regular file no
// larger than MaxFileSize and that outputSuffix can be appended to its
// name. A missing file is reported as an IOError wrapping os.ErrNotExist.
func ValidateInputFile(path, outputSuffix string) (os.FileInfo, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	if err := ValidateFilename(filepath.Base(path) + outputSuffix); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, cerrors.NewIO("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, invalid("path", path, ErrNotRegular)
	}
	if info.Size() > MaxFileSize {
		return nil, invalid("path", path, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size()))
	}
	return info, nil
}
