package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/garethgeorge/radixsort/internal/buffers"
	"github.com/garethgeorge/radixsort/internal/extsort"
	"github.com/garethgeorge/radixsort/internal/ioutil"
	"github.com/garethgeorge/radixsort/internal/progress"
	"github.com/garethgeorge/radixsort/internal/radix"
	"github.com/garethgeorge/radixsort/internal/verify"
	cli "github.com/urfave/cli/v2"
)

type sortJob struct {
	sorter        *radix.Sorter
	width         int
	input         buffers.Run
	outputs       []buffers.Run
	stdout        io.Writer
	blockBytes    int
	spillDir      string
	compressSpill bool
	verify        bool
}

func handleSortCommand(c *cli.Context) error {
	sorter, width, err := sorterFromFlags(c)
	if err != nil {
		return err
	}
	if c.Int("block-bytes") < 0 {
		return fmt.Errorf("--block-bytes must not be negative")
	}

	compressed := c.Bool("zstd")
	openRun := func(path string) buffers.Run {
		run := buffers.FileRun(path)
		if compressed {
			return buffers.CompressedRun(run)
		}
		return run
	}

	job := sortJob{
		sorter:        sorter,
		width:         width,
		input:         openRun(c.String("input")),
		stdout:        c.App.Writer,
		blockBytes:    c.Int("block-bytes"),
		spillDir:      c.String("spill-dir"),
		compressSpill: c.Bool("compress-spill"),
		verify:        c.Bool("verify"),
	}
	for _, path := range c.StringSlice("output") {
		job.outputs = append(job.outputs, openRun(path))
	}
	if len(job.outputs) == 0 && stdoutIsTerminal(job.stdout) {
		return fmt.Errorf("refusing to write binary records to a terminal, pass --output")
	}
	return job.run()
}

func (j *sortJob) run() (err error) {
	if err := j.checkOutputs(); err != nil {
		return err
	}

	// Outputs are truncated on open, so in-memory sorts read their input first.
	var sorted []byte
	if j.blockBytes == 0 {
		if sorted, err = j.sortInMemory(); err != nil {
			return err
		}
	}

	out, err := j.openOutputs()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close outputs: %w", cerr)
		}
	}()

	if j.blockBytes > 0 {
		return j.sortExternal(out)
	}
	if _, err := out.Write(sorted); err != nil {
		return fmt.Errorf("write sorted records: %w", err)
	}
	return nil
}

// checkOutputs rejects outputs that name the input file.
func (j *sortJob) checkOutputs() error {
	inPath, ok := buffers.Path(j.input)
	if !ok {
		return nil
	}
	in, err := os.Stat(inPath)
	if err != nil {
		return nil
	}
	for _, run := range j.outputs {
		outPath, ok := buffers.Path(run)
		if !ok {
			continue
		}
		if out, err := os.Stat(outPath); err == nil && os.SameFile(in, out) {
			return fmt.Errorf("output %s is the input file %s", outPath, inPath)
		}
	}
	return nil
}

// openOutputs returns one writer feeding every output in parallel. Closing it
// flushes and closes each output.
func (j *sortJob) openOutputs() (io.WriteCloser, error) {
	if len(j.outputs) == 0 {
		return ioutil.WriterWithCloser(j.stdout, ioutil.NewMultiCloser()), nil
	}
	var writers []io.Writer
	var closers []io.Closer
	for _, run := range j.outputs {
		w, err := run.Writer()
		if err != nil {
			ioutil.NewMultiCloser(closers...).Close()
			return nil, fmt.Errorf("open output %s: %w", run.Name(), err)
		}
		writers = append(writers, w)
		closers = append(closers, w)
	}
	multi := ioutil.ParallelMultiWriter(writers...)
	return ioutil.WriterWithCloser(multi, ioutil.NewMultiCloser(append([]io.Closer{multi}, closers...)...)), nil
}

// sortInMemory reads the whole input and returns it sorted.
func (j *sortJob) sortInMemory() ([]byte, error) {
	r, err := j.input.Reader()
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", j.input.Name(), err)
	}
	defer r.Close()

	buf, err := io.ReadAll(ioutil.WithBufferedReads(r))
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", j.input.Name(), err)
	}
	if len(buf)%j.width != 0 {
		return nil, fmt.Errorf("input %s is %d bytes, not a multiple of %d: %w", j.input.Name(), len(buf), j.width, ioutil.ErrPartialRecord)
	}
	n := len(buf) / j.width

	var before verify.Digest
	if j.verify {
		before = verify.DigestRecords(buf, n, j.width)
	}
	if err := j.sorter.Sort(buf, n, j.width); err != nil {
		return nil, fmt.Errorf("sort %s: %w", j.input.Name(), err)
	}
	if j.verify {
		if err := verify.Check(j.sorter, before, buf, n, j.width); err != nil {
			return nil, err
		}
		logger.Printf("verified %d records", n)
	}
	return buf, nil
}

func (j *sortJob) sortExternal(out io.Writer) (err error) {
	if j.verify {
		logger.Printf("--verify only checks in-memory sorts, skipping")
	}
	store, err := buffers.NewDirStoreFactory(j.spillDir, j.compressSpill)()
	if err != nil {
		return err
	}

	tracker := progress.NewLogProgressTracker(logger, 16)
	sorter, err := extsort.New(store, j.sorter, j.width,
		extsort.WithMaxBlockBytes(j.blockBytes),
		extsort.WithProgress(tracker))
	if err != nil {
		store.Release()
		return err
	}
	defer func() {
		err = errors.Join(err, sorter.Close())
	}()

	r, err := j.input.Reader()
	if err != nil {
		return fmt.Errorf("open input %s: %w", j.input.Name(), err)
	}
	defer r.Close()

	records := ioutil.NewRecordReader(ioutil.WithBufferedReads(r), j.width)
	block := make([]byte, max(j.blockBytes/j.width, 1)*j.width)
	for {
		n, err := records.ReadBlock(block)
		if n > 0 {
			if aerr := sorter.AddBlock(block[:n*j.width]); aerr != nil {
				return fmt.Errorf("add records: %w", aerr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input %s: %w", j.input.Name(), err)
		}
	}
	if err := sorter.Flush(); err != nil {
		return err
	}
	tracker.MarkFinished()

	if _, err := sorter.WriteTo(out); err != nil {
		return err
	}
	logger.Printf("merged %d records from %d runs", sorter.TotalRecords(), sorter.Runs())
	return nil
}

// stdoutIsTerminal guards against dumping binary records onto a terminal.
func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
