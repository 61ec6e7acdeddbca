package records

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// PostgreSQL NUMERIC limits: digits before the decimal point and after it.
const (
	maxNumericIntegerDigits = 131072
	maxNumericScale         = 16383
)

// ParseDecimal converts JSON number text such as "218.93179", "-0.5" or
// "1.5e-3" to an exact pgtype.Numeric.
func ParseDecimal(s string) (pgtype.Numeric, error) {
	text := strings.TrimSpace(s)
	mantissa, exponent := text, 0

	if i := strings.IndexAny(text, "eE"); i >= 0 {
		exp, err := strconv.Atoi(strings.TrimPrefix(text[i+1:], "+"))
		if err != nil {
			return pgtype.Numeric{}, fmt.Errorf("invalid exponent in %q: %w", s, sparkify.ErrParse)
		}
		if exp > maxNumericIntegerDigits || exp < -(maxNumericIntegerDigits+maxNumericScale) {
			return pgtype.Numeric{}, fmt.Errorf("exponent of %q is outside the NUMERIC range: %w", s, sparkify.ErrParse)
		}
		mantissa, exponent = text[:i], exp
	}

	negative := strings.HasPrefix(mantissa, "-")
	mantissa = strings.TrimPrefix(strings.TrimPrefix(mantissa, "-"), "+")

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	digits := intPart + fracPart
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return pgtype.Numeric{}, fmt.Errorf("invalid decimal %q: %w", s, sparkify.ErrParse)
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return pgtype.Numeric{}, fmt.Errorf("invalid decimal %q: %w", s, sparkify.ErrParse)
	}
	if negative {
		n.Neg(n)
	}

	exp := exponent - len(fracPart)
	if n.Sign() == 0 {
		exp = min(max(exp, -maxNumericScale), 0)
	}
	significant := len(strings.TrimLeft(digits, "0"))
	if -exp > maxNumericScale || significant+exp > maxNumericIntegerDigits {
		return pgtype.Numeric{}, fmt.Errorf("%q is outside the NUMERIC range: %w", s, sparkify.ErrParse)
	}

	return pgtype.Numeric{Int: n, Exp: int32(exp), Valid: true}, nil
}

// FormatDecimal renders n in plain notation; "NULL" when not valid.
// Values outside the NUMERIC range are shown as digits with an exponent.
func FormatDecimal(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil {
		return "NULL"
	}

	digits := new(big.Int).Abs(n.Int).String()
	sign := ""
	if n.Int.Sign() < 0 {
		sign = "-"
	}

	exp := int64(n.Exp)
	if exp > maxNumericIntegerDigits || -exp > maxNumericScale {
		return fmt.Sprintf("%s%se%d", sign, digits, exp)
	}

	if exp >= 0 {
		if n.Int.Sign() == 0 {
			return "0"
		}
		return sign + digits + strings.Repeat("0", int(exp))
	}

	scale := int(-exp)
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	point := len(digits) - scale
	return sign + digits[:point] + "." + digits[point:]
}
