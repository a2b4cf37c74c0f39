package fontshape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// ParseCharset parses a comma separated list of code points, code point
// ranges and literal characters into a range table. Code points are written
// U+XXXX (or 0xXXXX) and ranges as two code points joined by '-':
//
//	U+0020-U+007E,ÄÖÜ,0x20AC
//
// An item that is not a code point or range contributes each of its
// characters. A literal '-' or ',' can be given as U+002D and U+002C.
func ParseCharset(s string) (*unicode.RangeTable, error) {
	var runes []rune
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		lo, hi, ok, err := parseRange(item)
		if err != nil {
			return nil, fmt.Errorf("fontshape: charset %q: %w", item, err)
		}
		if !ok {
			runes = append(runes, []rune(item)...)
			continue
		}
		for r := lo; r <= hi; r++ {
			runes = append(runes, r)
		}
	}
	return rangetable.New(runes...), nil
}

// parseRange parses "U+XXXX" or "U+XXXX-U+YYYY". ok is false when item
// does not start with a code point prefix.
func parseRange(item string) (lo, hi rune, ok bool, err error) {
	if !hasCodePointPrefix(item) {
		return 0, 0, false, nil
	}
	first, second, isRange := strings.Cut(item, "-")
	lo, err = parseCodePoint(first)
	if err != nil {
		return 0, 0, true, err
	}
	hi = lo
	if isRange {
		hi, err = parseCodePoint(second)
		if err != nil {
			return 0, 0, true, err
		}
	}
	if hi < lo {
		return 0, 0, true, fmt.Errorf("range end %U before start %U", hi, lo)
	}
	return lo, hi, true, nil
}

func hasCodePointPrefix(s string) bool {
	return strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") ||
		strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if !hasCodePointPrefix(s) {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}
	if v > unicode.MaxRune {
		return 0, fmt.Errorf("code point %q out of range", s)
	}
	return rune(v), nil
}

// Runes lists the code points of rt in ascending order.
func Runes(rt *unicode.RangeTable) []rune {
	var out []rune
	rangetable.Visit(rt, func(r rune) {
		out = append(out, r)
	})
	return out
}
