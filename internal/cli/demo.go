package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/garethgeorge/radixsort/internal/gen"
	"github.com/garethgeorge/radixsort/internal/radix"
	cli "github.com/urfave/cli/v2"
)

const demoRule = "\n------------------------------------------------"

func handleDemoCommand(c *cli.Context) error {
	return runDemo(c.App.Writer)
}

type demoCase struct {
	title string
	run   func(w io.Writer) error
}

func runDemo(w io.Writer) error {
	cases := []demoCase{
		{"SIGNED INTEGERS (ASCENDING)", demoInts(radix.Ascending)},
		{"SIGNED INTEGERS (DESCENDING)", demoInts(radix.Descending)},
		{"SINGLE-PRECISION FLOATS (ASCENDING)", demoFloat32s(radix.Ascending)},
		{"SINGLE-PRECISION FLOATS (DESCENDING)", demoFloat32s(radix.Descending)},
		{"DOUBLE-PRECISION FLOATS (ASCENDING)", demoFloat64s(radix.Ascending)},
		{"DOUBLE-PRECISION FLOATS (DESCENDING)", demoFloat64s(radix.Descending)},
		{"FIXED-LENGTH STRINGS (ASCENDING)", demoStrings(radix.Ascending)},
		{"FIXED-LENGTH STRINGS (DESCENDING)", demoStrings(radix.Descending)},
		{"EDGE CASES AND ERROR HANDLING", demoEdgeCases},
	}

	fmt.Fprintln(w, "=== RADIX SORT DEMO ===")
	errs := ErrorMap{Title: "demo failures"}
	for i, dc := range cases {
		fmt.Fprintf(w, "\n--- CASE %d: %s ---\n", i+1, dc.title)
		if err := dc.run(w); err != nil {
			fmt.Fprintf(w, "Sorting failed with error: %v (code: %d)\n", err, errorCode(err))
			errs.AddError(dc.title, err)
		}
		if i < len(cases)-1 {
			fmt.Fprintln(w, demoRule)
		}
	}
	fmt.Fprintln(w, "\n=== ALL CASES COMPLETED ===")
	return errs.Err()
}

func errorCode(err error) int {
	var rerr *radix.Error
	if errors.As(err, &rerr) {
		return rerr.Kind.Code()
	}
	return 0
}

func demoInts(direction radix.Direction) func(io.Writer) error {
	return func(w io.Writer) error {
		data := slices.Clone(gen.ScenarioInts)
		fmt.Fprintln(w, "Original array:")
		printArray(w, data, func(v int64) string { return fmt.Sprint(v) })
		if err := radix.Int64s(data, radix.WithDirection(direction)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Sorted array (%s):\n", directionName(direction))
		printArray(w, data, func(v int64) string { return fmt.Sprint(v) })
		return nil
	}
}

func demoFloat32s(direction radix.Direction) func(io.Writer) error {
	return func(w io.Writer) error {
		data := slices.Clone(gen.ScenarioFloat32s)
		format := func(v float32) string { return fmt.Sprintf("%.3f", v) }
		fmt.Fprintln(w, "Original array:")
		printArray(w, data, format)
		if err := radix.Float32s(data, radix.WithDirection(direction)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Sorted array (%s):\n", directionName(direction))
		printArray(w, data, format)
		return nil
	}
}

func demoFloat64s(direction radix.Direction) func(io.Writer) error {
	return func(w io.Writer) error {
		data := slices.Clone(gen.ScenarioFloat64s)
		format := func(v float64) string { return fmt.Sprintf("%.6f", v) }
		fmt.Fprintln(w, "Original array:")
		printArray(w, data, format)
		if err := radix.Float64s(data, radix.WithDirection(direction)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Sorted array (%s):\n", directionName(direction))
		printArray(w, data, format)
		return nil
	}
}

func demoStrings(direction radix.Direction) func(io.Writer) error {
	return func(w io.Writer) error {
		data := slices.Clone(gen.ScenarioStrings)
		width := radix.FixedStringWidth(data)
		quote := func(s string) string { return "'" + s + "'" }
		fmt.Fprintf(w, "Maximum string length: %d characters\n", width-1)
		fmt.Fprintf(w, "Record width (with NUL terminator): %d bytes\n", width)
		fmt.Fprintln(w, "Original strings (padded):")
		printArray(w, data, quote)
		if err := radix.FixedStrings(data, radix.WithDirection(direction)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Sorted strings (%s):\n", directionName(direction))
		printArray(w, data, quote)
		return nil
	}
}

func demoEdgeCases(w io.Writer) error {
	if err := radix.Int32s(nil); err != nil {
		fmt.Fprintln(w, "Empty array test: FAILED")
		return err
	}
	fmt.Fprintln(w, "Empty array test: PASSED (successfully handled)")

	err := radix.Sort(nil, 10, 4, radix.WithKind(radix.SignedInteger))
	switch {
	case err == nil:
		fmt.Fprintln(w, "Nil buffer test: FAILED (expected error not returned)")
		return errors.New("nil buffer was accepted")
	case errors.Is(err, radix.ErrNullInput):
		fmt.Fprintf(w, "Nil buffer test: PASSED (expected error code: %d, got: %d)\n",
			radix.NullInput.Code(), errorCode(err))
	default:
		fmt.Fprintln(w, "Nil buffer test: FAILED (unexpected error code)")
		return err
	}
	return nil
}

func printArray[T any](w io.Writer, data []T, format func(T) string) {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = format(v)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func directionName(d radix.Direction) string {
	if d == radix.Descending {
		return "descending"
	}
	return "ascending"
}
