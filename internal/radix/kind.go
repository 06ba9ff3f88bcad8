package radix

import (
	"fmt"
	"strings"
)

// Kind selects how the bytes of a record are interpreted.
type Kind int

const (
	// RawBytes records are unsigned integers or fixed-length strings.
	RawBytes Kind = iota
	// SignedInteger records are two's-complement integers of any width.
	SignedInteger
	// Float32 records are IEEE-754 single precision values, 4 bytes wide.
	Float32
	// Float64 records are IEEE-754 double precision values, 8 bytes wide.
	Float64
)

func (k Kind) String() string {
	switch k {
	case RawBytes:
		return "raw"
	case SignedInteger:
		return "int"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= RawBytes && k <= Float64
}

// FixedWidth returns the only record width accepted for k, or 0 if k accepts
// any width.
func (k Kind) FixedWidth() int {
	switch k {
	case Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// ParseKind accepts the names printed by Kind.String plus a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "bytes", "string", "strings", "unsigned":
		return RawBytes, nil
	case "int", "signed", "integer":
		return SignedInteger, nil
	case "float32", "float":
		return Float32, nil
	case "float64", "double":
		return Float64, nil
	}
	return 0, newError(UnsupportedType, "unknown record kind %q", s)
}

// Order selects the byte processing order.
type Order int

const (
	// LeastSignificantFirst runs one stable counting pass per byte, starting
	// at the least significant byte.
	LeastSignificantFirst Order = iota
	// MostSignificantFirst partitions on the most significant byte and
	// recurses into each bucket. For RawBytes this is lexicographic order.
	MostSignificantFirst
)

func (o Order) String() string {
	switch o {
	case LeastSignificantFirst:
		return "lsb"
	case MostSignificantFirst:
		return "msb"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

func (o Order) valid() bool {
	return o == LeastSignificantFirst || o == MostSignificantFirst
}

// ParseOrder accepts the names printed by Order.String plus the lsd/msd aliases.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lsb", "lsd", "lsb-first":
		return LeastSignificantFirst, nil
	case "msb", "msd", "msb-first":
		return MostSignificantFirst, nil
	}
	return 0, newError(UnsupportedType, "unknown processing order %q", s)
}

// Direction selects ascending or descending output.
type Direction int

const (
	// Ascending puts the smallest record first.
	Ascending Direction = iota
	// Descending puts the largest record first.
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) valid() bool {
	return d == Ascending || d == Descending
}

// ParseDirection accepts "asc", "desc" and their long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, newError(UnsupportedType, "unknown direction %q", s)
}
