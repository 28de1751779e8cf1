package dataio

import (
	"fmt"
	"path/filepath"

	"github.com/facette/natsort"
)

// ListFiles returns the files of format in dir in natural order ("s2"
// before "s10"), restricted to the inclusive index range [start, end].
// end == -1 selects through the last file.
func ListFiles(dir string, format Format, start, end int) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, format.Pattern()))
	if err != nil {
		return nil, fmt.Errorf("dataio: %w", err)
	}
	natsort.Sort(files)
	return selectRange(files, start, end)
}

func selectRange(files []string, start, end int) ([]string, error) {
	n := len(files)
	switch {
	case start < 0 || start >= n:
		return nil, fmt.Errorf("%w: start %d with %d files", ErrRange, start, n)
	case end == -1:
		return files[start:], nil
	case end < start || end >= n:
		return nil, fmt.Errorf("%w: end %d with start %d and %d files", ErrRange, end, start, n)
	default:
		return files[start : end+1], nil
	}
}
