package cli

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/garethgeorge/radixsort/internal/radix"
	cli "github.com/urfave/cli/v2"
)

var logger = log.New(os.Stderr, "radixsort: ", log.LstdFlags)

// Shared flag definitions
var (
	// Record layout flags
	kindFlag = &cli.StringFlag{
		Name:  "kind",
		Usage: "Record kind: int, float32, float64 or string",
		Value: "int",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "Record width in bytes (implied for float32 and float64, 8 for int)",
	}
	orderFlag = &cli.StringFlag{
		Name:  "order",
		Usage: "Byte processing order: lsb or msb (strings sort lexicographically with msb)",
		Value: "lsb",
	}
	directionFlag = &cli.StringFlag{
		Name:  "direction",
		Usage: "Sort direction: asc or desc",
		Value: "asc",
	}
	bigEndianFlag = &cli.BoolFlag{
		Name:  "big-endian",
		Usage: "Numeric records are stored most significant byte first",
	}

	// Bench flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML file of benchmark scenarios (mutually exclusive with layout flags)",
	}
	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Number of records to generate for a single scenario",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed for generated records",
		Value: 1,
	}
	distributionFlag = &cli.StringFlag{
		Name:  "distribution",
		Usage: "Generated data: uniform, few-unique, sorted, reversed or special",
		Value: "uniform",
	}

	// Sort flags
	inputFlag = &cli.StringFlag{
		Name:     "input",
		Usage:    "File of fixed-width records to sort",
		Required: true,
	}
	outputFlag = &cli.StringSliceFlag{
		Name:  "output",
		Usage: "File to write sorted records to, may be repeated (defaults to stdout)",
	}
	zstdFlag = &cli.BoolFlag{
		Name:  "zstd",
		Usage: "Input and outputs are zstd compressed",
	}
	blockBytesFlag = &cli.IntFlag{
		Name:  "block-bytes",
		Usage: "Sort in blocks of this many bytes and merge them from disk (0 sorts in memory)",
	}
	spillDirFlag = &cli.StringFlag{
		Name:  "spill-dir",
		Usage: "Parent directory for sorted blocks when --block-bytes is set; each sort spills into its own subdirectory and removes it (defaults to the system temp dir)",
	}
	compressSpillFlag = &cli.BoolFlag{
		Name:  "compress-spill",
		Usage: "Compress spilled blocks with zstd",
	}
	verifyFlag = &cli.BoolFlag{
		Name:  "verify",
		Usage: "Check that in-memory output is an ordered permutation of the input",
	}
)

var layoutFlagNames = []string{"kind", "width", "order", "direction", "big-endian", "count", "seed", "distribution"}

var App = &cli.App{
	Name:  "radixsort",
	Usage: "Sort fixed-width binary records with radix sort",
	Commands: []*cli.Command{
		{
			Name:   "demo",
			Usage:  "Sort the built-in example data sets and print the results",
			Action: handleDemoCommand,
		},
		{
			Name:  "bench",
			Usage: "Time radix sort against the standard library on generated data",
			Flags: []cli.Flag{
				configFlag,
				kindFlag,
				widthFlag,
				orderFlag,
				directionFlag,
				bigEndianFlag,
				countFlag,
				seedFlag,
				distributionFlag,
			},
			Action: handleBenchCommand,
		},
		{
			Name:  "sort",
			Usage: "Sort a file of fixed-width records",
			Flags: []cli.Flag{
				inputFlag,
				outputFlag,
				kindFlag,
				widthFlag,
				orderFlag,
				directionFlag,
				bigEndianFlag,
				zstdFlag,
				blockBytesFlag,
				spillDirFlag,
				compressSpillFlag,
				verifyFlag,
			},
			Action: handleSortCommand,
		},
	},
}

// sorterFromFlags builds the sorter described by the layout flags and
// returns it with the record width.
func sorterFromFlags(c *cli.Context) (*radix.Sorter, int, error) {
	kind, err := radix.ParseKind(c.String("kind"))
	if err != nil {
		return nil, 0, err
	}
	order, err := radix.ParseOrder(c.String("order"))
	if err != nil {
		return nil, 0, err
	}
	direction, err := radix.ParseDirection(c.String("direction"))
	if err != nil {
		return nil, 0, err
	}

	width := c.Int("width")
	if width == 0 {
		width = kind.FixedWidth()
		if kind == radix.SignedInteger {
			width = 8
		}
	}
	if width <= 0 {
		return nil, 0, fmt.Errorf("--width is required for %v records", kind)
	}

	opts := []radix.Option{radix.WithKind(kind), radix.WithOrder(order), radix.WithDirection(direction)}
	if c.Bool("big-endian") {
		opts = append(opts, radix.WithByteOrder(binary.BigEndian))
	}
	sorter := radix.NewSorter(opts...)
	if err := sorter.CheckWidth(width); err != nil {
		return nil, 0, err
	}
	return sorter, width, nil
}
