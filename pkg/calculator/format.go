package calculator

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter renders operand text for display with digit grouping.
type Formatter struct {
	// Thousands separates groups of three integer digits.
	Thousands string
	// Decimal separates the integer and fractional digits.
	Decimal string
}

// DefaultFormatter groups with commas and uses a point as decimal separator.
var DefaultFormatter = Formatter{Thousands: ",", Decimal: "."}

// FormatForDisplay formats value with DefaultFormatter.
func FormatForDisplay(value string) string {
	return DefaultFormatter.Format(value)
}

// Format groups the integer digits of value in threes and reattaches the
// fractional digits unchanged. ErrorText is returned as is. An integer part
// that is not a number (such as the empty string) renders empty.
func (f Formatter) Format(value string) string {
	if value == ErrorText {
		return value
	}

	intPart, fracPart, hasFrac := strings.Cut(value, ".")
	intDisplay := f.groupInteger(intPart)

	if !hasFrac {
		return intDisplay
	}

	return intDisplay + f.decimal() + fracPart
}

func (f Formatter) groupInteger(s string) string {
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}

	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return ""
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ""
	}

	grouped := humanize.BigComma(n)
	if sep := f.thousands(); sep != "," {
		grouped = strings.ReplaceAll(grouped, ",", sep)
	}

	return sign + grouped
}

func (f Formatter) thousands() string {
	if f.Thousands == "" {
		return DefaultFormatter.Thousands
	}
	return f.Thousands
}

func (f Formatter) decimal() string {
	if f.Decimal == "" {
		return DefaultFormatter.Decimal
	}
	return f.Decimal
}
