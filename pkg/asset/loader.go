// Package asset reads pre-rendered device bitmaps. Files are passed along
// byte for byte; the module alone decides whether they are well formed.
package asset

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// NotFoundError is returned when a bitmap file does not exist.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset %s not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func NewLoader(fs afero.Fs, dir string) *Loader {
	if dir != "" {
		fs = afero.NewBasePathFs(fs, dir)
	}
	return &Loader{fs: fs}
}

// NewOsLoader loads assets from dir on the local filesystem.
func NewOsLoader(dir string) (*Loader, error) {
	fs := afero.NewOsFs()
	if dir == "" {
		return NewLoader(fs, ""), nil
	}

	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Errorf("asset dir %s not exists", dir)
	}

	return NewLoader(fs, dir), nil
}

type Loader struct {
	fs afero.Fs
}

func (l *Loader) Load(name string) ([]byte, error) {
	bs, err := afero.ReadFile(l.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Err: err}
		}
		return nil, errors.Wrapf(err, "read asset %s", name)
	}
	return bs, nil
}

// GlyphName maps a clock character to the bitmap the module ships for it:
// NUM0.BMP..NUM9.BMP for digits and NUMS.BMP for the colon separator.
func GlyphName(r rune) (string, bool) {
	switch {
	case r >= '0' && r <= '9':
		return fmt.Sprintf("NUM%c.BMP", r), true
	case r == ':':
		return "NUMS.BMP", true
	}
	return "", false
}
