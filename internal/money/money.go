package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// RateScale is the fixed-point denominator shared by rates, shares and percents.
// A value v scaled by RateScale represents v / 1,000,000.
const RateScale = 1_000_000

const scaleDigits = 6

var (
	// ErrOverflow is returned when a result does not fit in 64 bits
	ErrOverflow = errors.New("money: overflow")
	// ErrDivisionByZero is returned for a zero denominator
	ErrDivisionByZero = errors.New("money: division by zero")
	// ErrInvalidDecimal is returned when a decimal string cannot be parsed
	ErrInvalidDecimal = errors.New("money: invalid decimal")
)

// Satoshis is an amount of money in satoshis
type Satoshis uint64

func (s Satoshis) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Sum adds amounts and fails instead of wrapping around
func Sum(amounts ...Satoshis) (Satoshis, error) {
	var total uint64
	for _, a := range amounts {
		var carry uint64
		total, carry = bits.Add64(total, uint64(a), 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
	}
	return Satoshis(total), nil
}

// MulDivFloor returns floor(a * num / den).
// The product is computed on 128 bits so it never overflows before the division.
func MulDivFloor(a, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(a, num)
	if hi >= den {
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}

// Rate is a non-negative ratio scaled by RateScale (0.75 == 750000)
type Rate uint64

// RateFromFloat converts a configuration float into a scaled rate: round(f * RateScale).
// It is meant for configuration input only; no money math uses floats.
func RateFromFloat(f float64) (Rate, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDecimal, f)
	}
	scaled := math.Round(f * RateScale)
	if scaled > math.MaxInt64 {
		return 0, ErrOverflow
	}
	return Rate(uint64(scaled)), nil
}

// ParseRate parses a decimal string with at most six fractional digits
func ParseRate(s string) (Rate, error) {
	v, err := parseScaled(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative rate %q", ErrInvalidDecimal, s)
	}
	return Rate(v), nil
}

// Apply returns floor(amount * rate)
func (r Rate) Apply(amount Satoshis) (Satoshis, error) {
	v, err := MulDivFloor(uint64(amount), uint64(r), RateScale)
	return Satoshis(v), err
}

// PPM returns the rate in parts per million
func (r Rate) PPM() uint64 {
	return uint64(r)
}

func (r Rate) String() string {
	return formatScaled(int64(r))
}

// Share is an exact ownership ratio Num/Den
type Share struct {
	Num uint64
	Den uint64
}

// NewShare builds a share of num out of den
func NewShare(num, den uint64) (Share, error) {
	if den == 0 {
		return Share{}, ErrDivisionByZero
	}
	if num > den {
		return Share{}, fmt.Errorf("money: share %d/%d exceeds one", num, den)
	}
	return Share{Num: num, Den: den}, nil
}

// Apply returns floor(pool * Num / Den)
func (s Share) Apply(pool Satoshis) (Satoshis, error) {
	v, err := MulDivFloor(uint64(pool), s.Num, s.Den)
	return Satoshis(v), err
}

// PPM returns the share in parts per million, rounded down
func (s Share) PPM() uint64 {
	v, err := MulDivFloor(s.Num, RateScale, s.Den)
	if err != nil {
		return 0
	}
	return v
}

func (s Share) String() string {
	return fmt.Sprintf("%d/%d", s.Num, s.Den)
}

// Percent is a percentage expressed in millionths of a percentage point.
// 1.5% == 1_500_000, 100% == 100_000_000.
type Percent int64

const (
	// OnePercent is one percentage point
	OnePercent Percent = RateScale
	// HundredPercent is the whole
	HundredPercent Percent = 100 * RateScale
)

// ParsePercent parses "49", "1.0" or "0.125" as percentage points
func ParsePercent(s string) (Percent, error) {
	v, err := parseScaled(s)
	if err != nil {
		return 0, err
	}
	return Percent(v), nil
}

// PercentFromFloat converts a configuration float (percentage points) into a Percent
func PercentFromFloat(f float64) (Percent, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDecimal, f)
	}
	scaled := math.Round(f * RateScale)
	if scaled > math.MaxInt64 || scaled < math.MinInt64 {
		return 0, ErrOverflow
	}
	return Percent(int64(scaled)), nil
}

// SubFloor returns p - q, never below zero
func (p Percent) SubFloor(q Percent) Percent {
	if q >= p {
		return 0
	}
	return p - q
}

func (p Percent) String() string {
	return formatScaled(int64(p))
}

// Value implements driver.Valuer, writing a NUMERIC literal
func (p Percent) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns
func (p *Percent) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = 0
		return nil
	case []byte:
		parsed, err := parseScaled(string(v))
		if err != nil {
			return err
		}
		*p = Percent(parsed)
		return nil
	case string:
		parsed, err := parseScaled(v)
		if err != nil {
			return err
		}
		*p = Percent(parsed)
		return nil
	case int64:
		*p = Percent(v * RateScale)
		return nil
	case float64:
		parsed, err := PercentFromFloat(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	default:
		return fmt.Errorf("money: cannot scan %T into Percent", src)
	}
}

// parseScaled parses a decimal string into an integer scaled by RateScale
func parseScaled(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDecimal)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	// Trailing zeros beyond the scale carry no value (NUMERIC may pad them)
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > scaleDigits {
		return 0, fmt.Errorf("%w: more than %d fractional digits in %q", ErrInvalidDecimal, scaleDigits, s)
	}
	fracPart += strings.Repeat("0", scaleDigits-len(fracPart))
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseUint(intPart, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	frac, err := strconv.ParseUint(fracPart, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	hi, lo := bits.Mul64(whole, RateScale)
	if hi != 0 || lo > math.MaxInt64-frac {
		return 0, ErrOverflow
	}
	v := int64(lo + frac)
	if negative {
		v = -v
	}
	return v, nil
}

func formatScaled(v int64) string {
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}
	return fmt.Sprintf("%s%d.%06d", sign, u/RateScale, u%RateScale)
}
