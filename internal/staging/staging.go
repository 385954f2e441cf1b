package staging

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// File is a uniquely named temporary file holding one staged document or
// page image. It is owned by the call that created it.
type File struct {
	path string
	once sync.Once
	err  error
}

// Stage writes data to a new temp file in dir (os.TempDir() when empty).
// pattern follows os.CreateTemp, e.g. "receipt-*.jpg".
func Stage(dir, pattern string, data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("staging: empty payload")
	}

	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("staging: create temp file: %w", err)
	}

	f := &File{path: tmp.Name()}

	written, err := tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written != len(data) {
		err = fmt.Errorf("short write (%d of %d bytes)", written, len(data))
	}
	if err != nil {
		_ = f.Release()
		return nil, fmt.Errorf("staging: write %s: %w", f.path, err)
	}

	return f, nil
}

func (f *File) Path() string { return f.path }

// Release removes the file. Safe to call more than once.
func (f *File) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}
