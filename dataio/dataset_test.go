package dataio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeIR writes an IR export whose intensities are base + offset.
func writeIR(t *testing.T, dir, name string, base []float64, offset float64) {
	t.Helper()
	var b strings.Builder
	for i, v := range base {
		fmt.Fprintf(&b, "%d,%g\n", 1000+i, v+offset)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
}

func TestListFilesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"s10.csv", "s2.csv", "s1.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := ListFiles(dir, FormatIR, 0, -1)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "s1.csv", filepath.Base(files[0]))
	assert.Equal(t, "s2.csv", filepath.Base(files[1]))
	assert.Equal(t, "s10.csv", filepath.Base(files[2]))
}

func TestSelectRange(t *testing.T) {
	files := []string{"a", "b", "c", "d"}
	tests := []struct {
		start, end int
		want       []string
		err        bool
	}{
		{0, -1, []string{"a", "b", "c", "d"}, false},
		{1, -1, []string{"b", "c", "d"}, false},
		{1, 2, []string{"b", "c"}, false},
		{3, 3, []string{"d"}, false},
		{0, 4, nil, true},
		{2, 1, nil, true},
		{4, -1, nil, true},
		{-1, -1, nil, true},
	}
	for _, tt := range tests {
		got, err := selectRange(files, tt.start, tt.end)
		if tt.err {
			require.ErrorIsf(t, err, ErrRange, "start=%d end=%d", tt.start, tt.end)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadDatasetAveragesRepeats(t *testing.T) {
	dir := t.TempDir()
	base := []float64{1, 2, 3}
	// Two runs of two time points plus one trailing file.
	writeIR(t, dir, "scan1.csv", base, 0)
	writeIR(t, dir, "scan2.csv", base, 10)
	writeIR(t, dir, "scan3.csv", base, 2)
	writeIR(t, dir, "scan4.csv", base, 30)
	writeIR(t, dir, "scan5.csv", base, 1000)

	logger, hook := test.NewNullLogger()
	ds, err := LoadDataset(context.Background(), dir, LoadOptions{
		Format:     FormatIR,
		TimePoints: 2,
		End:        -1,
		Logger:     logger,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{1000, 1001, 1002}, ds.X)
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, 2, ds.Cols())
	assert.Equal(t, []float64{2, 3, 4}, ds.Column(0))
	assert.Equal(t, []float64{21, 22, 23}, ds.Column(1))

	require.NotEmpty(t, hook.Entries)
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, 1, e.Data["ignored"])
		}
	}
	assert.True(t, warned)
}

func TestLoadDatasetRange(t *testing.T) {
	dir := t.TempDir()
	base := []float64{5, 5}
	for i := 1; i <= 4; i++ {
		writeIR(t, dir, fmt.Sprintf("f%d.csv", i), base, float64(i))
	}

	ds, err := LoadDataset(context.Background(), dir, LoadOptions{
		Format:     FormatIR,
		TimePoints: 1,
		Start:      1,
		End:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Cols())
	assert.Equal(t, []float64{7.5, 7.5}, ds.Column(0))

	_, err = LoadDataset(context.Background(), dir, LoadOptions{Format: FormatIR, TimePoints: 1, End: 4})
	require.ErrorIs(t, err, ErrRange)

	_, err = LoadDataset(context.Background(), dir, LoadOptions{Format: FormatIR, TimePoints: 5, End: -1})
	require.ErrorIs(t, err, ErrRange)
}

func TestLoadDatasetErrors(t *testing.T) {
	dir := t.TempDir()
	writeIR(t, dir, "a1.csv", []float64{1, 2, 3}, 0)
	writeIR(t, dir, "a2.csv", []float64{1, 2}, 0)

	_, err := LoadDataset(context.Background(), dir, LoadOptions{Format: FormatIR, TimePoints: 0, End: -1})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = LoadDataset(context.Background(), dir, LoadOptions{Format: FormatIR, TimePoints: 2, End: -1})
	require.ErrorIs(t, err, ErrShape)

	_, err = LoadDataset(context.Background(), t.TempDir(), LoadOptions{Format: FormatIR, TimePoints: 1, End: -1})
	require.ErrorIs(t, err, ErrRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadDataset(ctx, dir, LoadOptions{Format: FormatIR, TimePoints: 1, End: -1})
	require.ErrorIs(t, err, context.Canceled)
}
