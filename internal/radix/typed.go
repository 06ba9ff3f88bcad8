package radix

import (
	"encoding/binary"
	"slices"
)

// typedOptions appends the options a typed helper depends on after the
// caller's, so they win.
func typedOptions(opts []Option, forced ...Option) []Option {
	return append(slices.Clip(opts), forced...)
}

// Int32s sorts data in place.
func Int32s(data []int32, opts ...Option) error {
	buf := EncodeInt32s(make([]byte, 0, len(data)*4), data)
	opts = typedOptions(opts, WithKind(SignedInteger), WithByteOrder(binary.LittleEndian))
	if err := Sort(buf, len(data), 4, opts...); err != nil {
		return err
	}
	DecodeInt32s(data, buf)
	return nil
}

// Int64s sorts data in place.
func Int64s(data []int64, opts ...Option) error {
	buf := EncodeInt64s(make([]byte, 0, len(data)*8), data)
	opts = typedOptions(opts, WithKind(SignedInteger), WithByteOrder(binary.LittleEndian))
	if err := Sort(buf, len(data), 8, opts...); err != nil {
		return err
	}
	DecodeInt64s(data, buf)
	return nil
}

// Float32s sorts data in place. NaNs with the sign bit clear sort after +Inf,
// those with it set sort before -Inf, and -0 sorts before +0.
func Float32s(data []float32, opts ...Option) error {
	buf := EncodeFloat32s(make([]byte, 0, len(data)*4), data)
	opts = typedOptions(opts, WithKind(Float32), WithByteOrder(binary.LittleEndian))
	if err := Sort(buf, len(data), 4, opts...); err != nil {
		return err
	}
	DecodeFloat32s(data, buf)
	return nil
}

// Float64s sorts data in place with the same NaN and zero placement as Float32s.
func Float64s(data []float64, opts ...Option) error {
	buf := EncodeFloat64s(make([]byte, 0, len(data)*8), data)
	opts = typedOptions(opts, WithKind(Float64), WithByteOrder(binary.LittleEndian))
	if err := Sort(buf, len(data), 8, opts...); err != nil {
		return err
	}
	DecodeFloat64s(data, buf)
	return nil
}

// FixedStrings sorts data lexicographically by bytes. Each string is padded
// with NUL bytes to one more than the longest string, so a prefix sorts
// before any longer string that extends it.
func FixedStrings(data []string, opts ...Option) error {
	if len(data) == 0 {
		return nil
	}
	width := FixedStringWidth(data)
	buf := EncodeFixedStrings(make([]byte, 0, len(data)*width), data, width)
	opts = typedOptions(opts, WithKind(RawBytes), WithOrder(MostSignificantFirst))
	if err := Sort(buf, len(data), width, opts...); err != nil {
		return err
	}
	DecodeFixedStrings(data, buf, width)
	return nil
}
