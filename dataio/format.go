package dataio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat reports an unknown format name or a file that does not
	// follow its format.
	ErrFormat = errors.New("dataio: unsupported format")

	// ErrShape reports files whose spectral axes differ in length.
	ErrShape = errors.New("dataio: shape mismatch")

	// ErrRange reports a file selection outside the available files.
	ErrRange = errors.New("dataio: file range out of bounds")

	// ErrInvalidOptions reports unusable load options.
	ErrInvalidOptions = errors.New("dataio: invalid options")
)

// Format identifies a spectrometer export layout.
type Format int

const (
	FormatRaman Format = iota
	FormatIR
	FormatUVVis
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatRaman:
		return "raman"
	case FormatIR:
		return "ir"
	case FormatUVVis:
		return "uv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Pattern returns the file glob of the format.
func (f Format) Pattern() string {
	if f == FormatUVVis {
		return "*.TXT"
	}
	return "*.csv"
}

// ParseFormat maps a case-insensitive configuration name to a Format.
// "uv-vis" and "uvvis" are accepted for UV-Vis.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raman", "":
		return FormatRaman, nil
	case "ir":
		return FormatIR, nil
	case "uv", "uv-vis", "uvvis":
		return FormatUVVis, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
}
