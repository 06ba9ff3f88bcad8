package cli

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/garethgeorge/radixsort/internal/buffers"
	"github.com/garethgeorge/radixsort/internal/ioutil"
	"github.com/garethgeorge/radixsort/internal/radix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs the CLI with args and returns what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	var out bytes.Buffer
	prev := App.Writer
	App.Writer = &out
	defer func() { App.Writer = prev }()

	err := App.Run(append([]string{"radixsort"}, args...))
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := runApp(t, "demo")
	require.NoError(t, err)

	for _, want := range []string{
		"-9000 -45 -24 -1 0 2 66 75 170 802\n",
		"802 170 75 66 2 0 -1 -24 -45 -9000\n",
		"-99.900 -1.250 -0.001 0.000 0.500 2.000 3.140 100.000\n",
		"100.000 3.140 2.000 0.500 0.000 -0.001 -1.250 -99.900\n",
		"'apple' 'banana' 'cherry' 'fig' 'grapefruit' 'zebra'\n",
		"'zebra' 'grapefruit' 'fig' 'cherry' 'banana' 'apple'\n",
		"Record width (with NUL terminator): 11 bytes",
		"Empty array test: PASSED",
		"Nil buffer test: PASSED (expected error code: -1, got: -1)",
		"=== ALL CASES COMPLETED ===",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "FAILED")
}

func writeInts(t *testing.T, path string, values []int32, compressed bool) {
	t.Helper()
	var run buffers.Run = buffers.FileRun(path)
	if compressed {
		run = buffers.CompressedRun(run)
	}
	w, err := run.Writer()
	require.NoError(t, err)
	_, err = w.Write(radix.EncodeInt32s(nil, values))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readInts(t *testing.T, path string, compressed bool) []int32 {
	t.Helper()
	var run buffers.Run = buffers.FileRun(path)
	if compressed {
		run = buffers.CompressedRun(run)
	}
	r, err := run.Reader()
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	values := make([]int32, len(data)/4)
	radix.DecodeInt32s(values, data)
	return values
}

func randomInts(seed int64, n int) []int32 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(rng.Uint32())
	}
	return values
}

func TestSortCommand(t *testing.T) {
	values := randomInts(1, 10000)
	want := slices.Clone(values)
	slices.Sort(want)
	wantDesc := slices.Clone(want)
	slices.Reverse(wantDesc)

	tests := []struct {
		name       string
		compressed bool
		args       []string
		want       []int32
	}{
		{"in memory", false, []string{"--verify"}, want},
		{"in memory descending msb", false, []string{"--order", "msb", "--direction", "desc"}, wantDesc},
		{"external", false, []string{"--block-bytes", "4096"}, want},
		{"external zstd", true, []string{"--zstd", "--block-bytes", "1000", "--compress-spill", "--direction", "desc"}, wantDesc},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in")
			out1 := filepath.Join(dir, "out1")
			out2 := filepath.Join(dir, "out2")
			writeInts(t, in, values, tc.compressed)

			args := []string{"sort", "--input", in, "--output", out1, "--output", out2,
				"--kind", "int", "--width", "4", "--spill-dir", filepath.Join(dir, "spill")}
			_, err := runApp(t, append(args, tc.args...)...)
			require.NoError(t, err)

			assert.Equal(t, tc.want, readInts(t, out1, tc.compressed))
			assert.Equal(t, tc.want, readInts(t, out2, tc.compressed))
			assertNoSpill(t, filepath.Join(dir, "spill"))
		})
	}
}

// assertNoSpill checks that no run directory is left under spill.
func assertNoSpill(t *testing.T, spill string) {
	t.Helper()
	entries, err := os.ReadDir(spill)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotRegexp(t, `^radixsort-runs-`, e.Name(), "spilled runs are removed")
	}
}

func TestSortCommand_SpillDirKeepsFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	keep := filepath.Join(dir, "notes.txt")
	values := randomInts(2, 1000)
	writeInts(t, in, values, false)
	require.NoError(t, os.WriteFile(keep, []byte("do not delete"), 0o644))

	_, err := runApp(t, "sort", "--input", in, "--output", out, "--kind", "int", "--width", "4",
		"--block-bytes", "400", "--spill-dir", dir)
	require.NoError(t, err)

	want := slices.Clone(values)
	slices.Sort(want)
	assert.Equal(t, want, readInts(t, out, false))
	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "do not delete", string(data))
	assert.Equal(t, values, readInts(t, in, false))
	assertNoSpill(t, dir)
}

func TestSortCommand_OutputIsInput(t *testing.T) {
	tests := []struct {
		name       string
		compressed bool
		args       []string
	}{
		{"in memory", false, nil},
		{"external", false, []string{"--block-bytes", "400"}},
		{"external zstd", true, []string{"--zstd", "--block-bytes", "400"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in")
			values := randomInts(3, 1000)
			writeInts(t, in, values, tc.compressed)
			link := filepath.Join(dir, "link")
			require.NoError(t, os.Symlink(in, link))

			for _, out := range []string{in, link} {
				args := []string{"sort", "--input", in, "--output", filepath.Join(dir, "other"), "--output", out,
					"--kind", "int", "--width", "4", "--spill-dir", filepath.Join(dir, "spill")}
				_, err := runApp(t, append(args, tc.args...)...)
				assert.ErrorContains(t, err, "is the input file")
				assert.Equal(t, values, readInts(t, in, tc.compressed))
			}
		})
	}
}

func TestSortCommand_Stdout(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in")
	require.NoError(t, os.WriteFile(in, []byte("pearfigsappl"), 0o644))

	out, err := runApp(t, "sort", "--input", in, "--kind", "string", "--width", "4", "--order", "msb")
	require.NoError(t, err)
	assert.Equal(t, "applfigspear", out)
}

func TestSortCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(in, []byte{1, 2, 3, 4, 5}, 0o644))

	_, err := runApp(t, "sort", "--input", in, "--kind", "int", "--width", "4")
	assert.ErrorIs(t, err, ioutil.ErrPartialRecord)

	_, err = runApp(t, "sort", "--input", in, "--kind", "int", "--width", "4", "--block-bytes", "8", "--spill-dir", filepath.Join(dir, "spill"))
	assert.ErrorIs(t, err, ioutil.ErrPartialRecord)

	_, err = runApp(t, "sort", "--input", in, "--kind", "float64", "--width", "4")
	assert.ErrorIs(t, err, radix.ErrSizeMismatch)

	_, err = runApp(t, "sort", "--input", in, "--kind", "complex")
	assert.ErrorIs(t, err, radix.ErrUnsupportedType)

	_, err = runApp(t, "sort", "--input", in, "--kind", "string")
	assert.ErrorContains(t, err, "--width is required")

	_, err = runApp(t, "sort", "--input", filepath.Join(dir, "missing"), "--kind", "int")
	assert.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[scenario]]
name = "tiny-ints"
kind = "int"
width = 4
count = 500

[[scenario]]
name = "tiny-strings"
kind = "string"
width = 7
count = 300
order = "msb"
direction = "desc"

[[scenario]]
name = "tiny-floats"
kind = "float64"
count = 300
bigEndian = true
distribution = "special"
`), 0o644))

	out, err := runApp(t, "bench", "--config", path)
	require.NoError(t, err)
	for _, name := range []string{"tiny-ints", "tiny-strings", "tiny-floats"} {
		assert.Contains(t, out, name)
	}

	out, err = runApp(t, "bench", "--count", "200", "--kind", "float32", "--distribution", "reversed")
	require.NoError(t, err)
	assert.Contains(t, out, "flags")

	_, err = runApp(t, "bench", "--config", path, "--kind", "int")
	assert.ErrorContains(t, err, "--kind is not allowed")

	_, err = runApp(t, "bench", "--count", "10", "--kind", "float32", "--width", "8")
	assert.ErrorContains(t, err, "invalid scenarios")
}

func TestErrorMap(t *testing.T) {
	var errs ErrorMap
	assert.NoError(t, errs.Err())

	errs.Title = "failed"
	errs.AddError("b", errors.New("second"))
	errs.AddError("a", radix.ErrSizeMismatch)
	require.Error(t, errs.Err())
	assert.Equal(t, "failed:\na: "+radix.ErrSizeMismatch.Error()+"\nb: second\n", errs.Error())
	assert.ErrorIs(t, errs.Err(), radix.ErrSizeMismatch)
}
