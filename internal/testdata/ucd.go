package testdata

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

//go:generate go run download.go

// UnicodeVersion is the version of the UCD files used for testing.
const UnicodeVersion = "15.0.0"

// EastAsianWidthExcerpt is a hand-picked excerpt of EastAsianWidth.txt,
// available without downloading the UCD.
//
//go:embed EastAsianWidth-excerpt.txt
var EastAsianWidthExcerpt []byte

// UCDReader returns reader for the given ucd file for testing.
func UCDReader(file string) (io.Reader, error) {
	data, err := os.ReadFile(UCDPath(file))
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}

// UCDPath returns path for the given ucd file.
func UCDPath(file string) string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}

	return filepath.Join(filepath.Dir(pkgdir), "ucd", file)
}
