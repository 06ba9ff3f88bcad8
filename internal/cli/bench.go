package cli

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/garethgeorge/radixsort/internal/config"
	"github.com/garethgeorge/radixsort/internal/gen"
	"github.com/garethgeorge/radixsort/internal/poolutil"
	"github.com/garethgeorge/radixsort/internal/radix"
	"github.com/garethgeorge/radixsort/internal/verify"
	cli "github.com/urfave/cli/v2"
)

func handleBenchCommand(c *cli.Context) error {
	cfg, err := benchConfig(c)
	if err != nil {
		return err
	}
	scenarios, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("invalid scenarios: %w", err)
	}
	return runBench(c.App.Writer, scenarios)
}

// benchConfig loads --config, or builds a single scenario from the layout
// flags when --count is set, or falls back to the default scenarios.
func benchConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		for _, name := range layoutFlagNames {
			if c.IsSet(name) {
				return nil, fmt.Errorf("when using --config, --%s is not allowed", name)
			}
		}
		return config.LoadConfig(path)
	}
	if !c.IsSet("count") {
		return config.Default(), nil
	}
	return &config.Config{Scenarios: []config.Scenario{{
		Name:         "flags",
		Kind:         c.String("kind"),
		Width:        c.Int("width"),
		Count:        c.Int("count"),
		Order:        c.String("order"),
		Direction:    c.String("direction"),
		BigEndian:    c.Bool("big-endian"),
		Seed:         c.Int64("seed"),
		Distribution: c.String("distribution"),
	}}}, nil
}

type benchResult struct {
	name     string
	records  int
	radix    time.Duration
	baseline time.Duration
}

func runBench(w io.Writer, scenarios []config.Resolved) error {
	pool := poolutil.NewSlabPool(1)
	errs := ErrorMap{Title: "failed scenarios"}
	var results []benchResult
	for _, sc := range scenarios {
		res, err := benchScenario(sc, pool)
		if err != nil {
			logger.Printf("scenario %s: %v", sc.Name, err)
			errs.AddError(sc.Name, err)
			continue
		}
		results = append(results, res)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "scenario\trecords\tradix\tslices\tspeedup\t")
	for _, r := range results {
		speedup := math.NaN()
		if r.radix > 0 {
			speedup = float64(r.baseline) / float64(r.radix)
		}
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%.2fx\t\n", r.name, r.records, r.radix.Round(time.Microsecond), r.baseline.Round(time.Microsecond), speedup)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return errs.Err()
}

func benchScenario(sc config.Resolved, pool *poolutil.SlabPool) (benchResult, error) {
	res := benchResult{name: sc.Name, records: sc.Count}
	buf, err := gen.Records(sc.Kind, sc.Width, sc.Count, sc.Distribution, sc.Seed)
	if err != nil {
		return res, fmt.Errorf("generate records: %w", err)
	}
	baseline := slices.Clone(buf)

	sorter := radix.NewSorter(append(sc.SorterOptions(), radix.WithScratchPool(pool))...)
	before := verify.DigestRecords(buf, sc.Count, sc.Width)

	start := time.Now()
	if err := sorter.Sort(buf, sc.Count, sc.Width); err != nil {
		return res, fmt.Errorf("radix sort: %w", err)
	}
	res.radix = time.Since(start)

	if err := verify.Check(sorter, before, buf, sc.Count, sc.Width); err != nil {
		return res, fmt.Errorf("verify: %w", err)
	}

	start = time.Now()
	baselineSort(sorter, baseline, sc.Count, sc.Width)
	res.baseline = time.Since(start)
	return res, nil
}

// baselineSort sorts with the standard library: natively typed values where
// the records map onto a Go type, record slices and Compare otherwise.
func baselineSort(s *radix.Sorter, buf []byte, n, width int) {
	native := s.ByteOrder() == binary.LittleEndian && s.Direction() == radix.Ascending
	switch {
	case native && s.Kind() == radix.SignedInteger && width == 8:
		values := make([]int64, n)
		radix.DecodeInt64s(values, buf)
		slices.Sort(values)
	case native && s.Kind() == radix.SignedInteger && width == 4:
		values := make([]int32, n)
		radix.DecodeInt32s(values, buf)
		slices.Sort(values)
	case native && s.Kind() == radix.Float64:
		values := make([]float64, n)
		radix.DecodeFloat64s(values, buf)
		slices.Sort(values)
	case native && s.Kind() == radix.Float32:
		values := make([]float32, n)
		radix.DecodeFloat32s(values, buf)
		slices.Sort(values)
	default:
		records := make([][]byte, n)
		for i := range records {
			records[i] = buf[i*width : (i+1)*width]
		}
		slices.SortStableFunc(records, s.Compare)
	}
}
