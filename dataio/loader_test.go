package dataio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ramanExport = `Instrument,BWS465
Integration Time,1000
Pixel,Wavelength,Raman Shift,Dark,Reference,Dark Subtracted #1
0,532.1,100.5,12,0,40.25
1,532.2,101.5,12,0,41
2,532.3,,12,0,43
3,532.4,103.5,12,0,n/a
4,532.5,104.5,12,0,44.5
`

func TestReadSpectrumRaman(t *testing.T) {
	x, y, err := ReadSpectrum(strings.NewReader(ramanExport), FormatRaman)
	require.NoError(t, err)
	assert.Equal(t, []float64{100.5, 101.5, 104.5}, x)
	assert.Equal(t, []float64{40.25, 41, 44.5}, y)
}

func TestReadSpectrumRamanHeaderErrors(t *testing.T) {
	_, _, err := ReadSpectrum(strings.NewReader("a,b\n1,2\n"), FormatRaman)
	require.ErrorIs(t, err, ErrFormat)

	_, _, err = ReadSpectrum(strings.NewReader("Raman Shift,Dark\n1,2\n"), FormatRaman)
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadSpectrumIR(t *testing.T) {
	in := "4000.0,0.91\n3998.1, 0.92\nwavenumber,absorbance\n3996.2,0.95,extra\n3994.3\n"
	x, y, err := ReadSpectrum(strings.NewReader(in), FormatIR)
	require.NoError(t, err)
	assert.Equal(t, []float64{4000, 3998.1, 3996.2}, x)
	assert.Equal(t, []float64{0.91, 0.92, 0.95}, y)
}

func TestReadSpectrumUVVis(t *testing.T) {
	in := "Date;2024-01-01\r\n" +
		"nm;Sample;Dark;Reference;Absorbance\r\n" +
		"200.0;1;2;3;0.5\r\n" +
		"200.5;1;2;3;\r\n" +
		"201.0;1;2;3;0.75\r\n" +
		"201.5;1;2\r\n"
	x, y, err := ReadSpectrum(strings.NewReader(in), FormatUVVis)
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 201}, x)
	assert.Equal(t, []float64{0.5, 0.75}, y)
}

func TestReadSpectrumUnknownFormat(t *testing.T) {
	_, _, err := ReadSpectrum(strings.NewReader(""), Format(42))
	require.ErrorIs(t, err, ErrFormat)
}

func TestLoadSpectrumMissingFile(t *testing.T) {
	_, _, err := LoadSpectrum(filepath.Join(t.TempDir(), "nope.csv"), FormatIR)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSpectrumNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n"), 0o644))

	_, _, err := LoadSpectrum(path, FormatRaman)
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "bad.csv")
}
