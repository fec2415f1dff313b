// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package memory contains byte size types and parsing.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

// Size implements a flag-friendly byte count.
type Size int64

// base-2 and base-10 size suffixes
const (
	B Size = 1 << (10 * iota)
	KiB
	MiB
	GiB
	TiB

	KB Size = 1e3
	MB Size = 1e6
	GB Size = 1e9
	TB Size = 1e12
)

// Int returns the size as an int.
func (size Size) Int() int { return int(size) }

// Int64 returns the size as an int64.
func (size Size) Int64() int64 { return int64(size) }

// Float64 returns the size as a float64.
func (size Size) Float64() float64 { return float64(size) }

// String converts the size to a string using base-2 prefixes, unless the
// number is exactly a base-10 multiple.
func (size Size) String() string {
	if size == 0 {
		return "0"
	}

	switch {
	case size >= TiB*2/3:
		return fmt.Sprintf("%.1f TiB", size.Float64()/TiB.Float64())
	case size >= GiB*2/3:
		return fmt.Sprintf("%.1f GiB", size.Float64()/GiB.Float64())
	case size >= MiB*2/3:
		return fmt.Sprintf("%.1f MiB", size.Float64()/MiB.Float64())
	case size >= KiB*2/3:
		return fmt.Sprintf("%.1f KiB", size.Float64()/KiB.Float64())
	}

	return strconv.FormatInt(size.Int64(), 10) + " B"
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Set updates the value from a string, implements pflag.Value.
func (size *Size) Set(s string) error {
	if s == "" {
		return errs.New("empty size")
	}

	p := len(s)
	for p > 0 && isLetter(s[p-1]) {
		p--
	}
	value, suffix := s[:p], s[p:]
	suffix = strings.ToUpper(suffix)
	if suffix == "" || suffix[len(suffix)-1] != 'B' {
		suffix += "B"
	}

	value = strings.TrimSpace(value)
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errs.New("size %q is not a number: %v", s, err)
	}

	switch suffix {
	case "TIB":
		*size = Size(v * TiB.Float64())
	case "GIB":
		*size = Size(v * GiB.Float64())
	case "MIB":
		*size = Size(v * MiB.Float64())
	case "KIB":
		*size = Size(v * KiB.Float64())
	case "TB":
		*size = Size(v * TB.Float64())
	case "GB":
		*size = Size(v * GB.Float64())
	case "MB":
		*size = Size(v * MB.Float64())
	case "KB":
		*size = Size(v * KB.Float64())
	case "B", "":
		*size = Size(v)
	default:
		return errs.New("unknown size suffix %q", suffix)
	}

	return nil
}

// Type implements pflag.Value.
func (Size) Type() string { return "memory.Size" }

// ParseString parses a size string.
func ParseString(s string) (Size, error) {
	var size Size
	err := size.Set(s)
	return size, err
}
