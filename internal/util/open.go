package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

type xzReadCloser struct {
	io.Reader
	file *os.File
}

func (r *xzReadCloser) Close() error {
	return r.file.Close()
}

// OpenMaybeXz opens a file for reading, transparently decompressing when the
// name ends in .xz. Barcode tables and profile dumps are commonly shipped
// compressed.
func OpenMaybeXz(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(path, ".xz") {
		return f, nil
	}

	xr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open xz stream %s: %w", path, err)
	}
	return &xzReadCloser{Reader: xr, file: f}, nil
}
