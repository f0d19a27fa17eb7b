package safecalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is a numeric value produced by evaluating an expression. A Number is
// either an exact integer of arbitrary size or an IEEE-754 double. Integer
// literals and integer-only arithmetic stay exact; anything touching a float
// becomes a float. Display formatting is up to the caller.
type Number struct {
	i *big.Int
	f float64
}

// IntNumber creates an exact integer Number. The value is copied.
func IntNumber(v *big.Int) Number {
	return Number{i: new(big.Int).Set(v)}
}

// Int64Number creates an exact integer Number from an int64.
func Int64Number(v int64) Number {
	return Number{i: big.NewInt(v)}
}

// FloatNumber creates a floating-point Number.
func FloatNumber(v float64) Number {
	return Number{f: v}
}

// IsInt reports whether the Number is an exact integer.
func (n Number) IsInt() bool {
	return n.i != nil
}

// Int returns a copy of the exact integer value. It panics if the Number is
// not an integer.
func (n Number) Int() *big.Int {
	if n.i == nil {
		panic("safecalc: Int on a float Number")
	}
	return new(big.Int).Set(n.i)
}

// Float64 returns the value as a float64. Exact integers are rounded to the
// nearest double.
func (n Number) Float64() float64 {
	if n.i == nil {
		return n.f
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	return f
}

// Equal reports whether two Numbers have the same type and value.
func (n Number) Equal(m Number) bool {
	if n.IsInt() != m.IsInt() {
		return false
	}
	if n.IsInt() {
		return n.i.Cmp(m.i) == 0
	}
	return n.f == m.f
}

// String formats the Number exactly: integers in full, floats with the
// shortest representation that round-trips.
func (n Number) String() string {
	if n.i != nil {
		return n.i.String()
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Format formats the Number for display, trimming floats to the given number
// of significant digits. Integers always print in full.
func (n Number) Format(digits int) string {
	if n.i != nil {
		return n.i.String()
	}
	return strconv.FormatFloat(n.f, 'g', digits, 64)
}

// parseNumber converts a numeric literal token to its value. A literal with a
// dot or exponent is a float; anything else is an exact integer. A float
// literal too large for a double becomes an infinity, as in the host
// language's float literals.
func parseNumber(text string) (Number, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return Number{}, &LexError{Text: text, Class: "number"}
			}
		}
		return FloatNumber(f), nil
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Number{}, &LexError{Text: text, Class: "number"}
	}
	return Number{i: i}, nil
}

// isZero reports whether the Number is exactly zero.
func (n Number) isZero() bool {
	if n.i != nil {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

func posNumber(v Number) (Number, error) {
	return v, nil
}

func negNumber(v Number) (Number, error) {
	if v.i != nil {
		return Number{i: new(big.Int).Neg(v.i)}, nil
	}
	return FloatNumber(-v.f), nil
}

func addNumbers(l, r Number) (Number, error) {
	if l.i != nil && r.i != nil {
		return Number{i: new(big.Int).Add(l.i, r.i)}, nil
	}
	return FloatNumber(l.Float64() + r.Float64()), nil
}

func subNumbers(l, r Number) (Number, error) {
	if l.i != nil && r.i != nil {
		return Number{i: new(big.Int).Sub(l.i, r.i)}, nil
	}
	return FloatNumber(l.Float64() - r.Float64()), nil
}

func mulNumbers(l, r Number) (Number, error) {
	if l.i != nil && r.i != nil {
		return Number{i: new(big.Int).Mul(l.i, r.i)}, nil
	}
	return FloatNumber(l.Float64() * r.Float64()), nil
}

// divNumbers is true division: the result is always a float.
func divNumbers(l, r Number) (Number, error) {
	if r.isZero() {
		return Number{}, &OperationError{Op: "/", Msg: "division by zero"}
	}
	return FloatNumber(l.Float64() / r.Float64()), nil
}

// floorDivNumbers rounds the quotient toward negative infinity. Two integers
// give an exact integer; otherwise the result is a float.
func floorDivNumbers(l, r Number) (Number, error) {
	if r.isZero() {
		return Number{}, &OperationError{Op: "//", Msg: "floor division by zero"}
	}
	if l.i != nil && r.i != nil {
		q, _ := floorQuoRem(l.i, r.i)
		return Number{i: q}, nil
	}
	return FloatNumber(math.Floor(l.Float64() / r.Float64())), nil
}

// modNumbers is the floored modulo: the result takes the sign of the divisor,
// so -7 % 2 is 1 and 7 % -2 is -1.
func modNumbers(l, r Number) (Number, error) {
	if r.isZero() {
		return Number{}, &OperationError{Op: "%", Msg: "modulo by zero"}
	}
	if l.i != nil && r.i != nil {
		_, m := floorQuoRem(l.i, r.i)
		return Number{i: m}, nil
	}
	lf, rf := l.Float64(), r.Float64()
	m := math.Mod(lf, rf)
	if m != 0 && (m < 0) != (rf < 0) {
		m += rf
	}
	return FloatNumber(m), nil
}

// powNumbers is exponentiation. An integer base with a non-negative integer
// exponent stays exact; everything else goes through float math. A negative
// base with a fractional exponent has no real result and faults rather than
// producing NaN.
func powNumbers(l, r Number) (Number, error) {
	if l.i != nil && r.i != nil && r.i.Sign() >= 0 {
		if !r.i.IsInt64() || r.i.Int64() > maxIntExponent {
			return Number{}, &ComplexityError{What: "integer exponent too large"}
		}
		return Number{i: new(big.Int).Exp(l.i, r.i, nil)}, nil
	}
	lf, rf := l.Float64(), r.Float64()
	switch {
	case lf == 0 && rf < 0:
		return Number{}, &OperationError{Op: "**", Msg: "zero cannot be raised to a negative power"}
	case lf < 0 && rf != math.Trunc(rf):
		return Number{}, &OperationError{Op: "**", Msg: "negative number cannot be raised to a fractional power"}
	}
	v := math.Pow(lf, rf)
	if math.IsInf(v, 0) && !math.IsInf(lf, 0) && !math.IsInf(rf, 0) {
		return Number{}, &OperationError{Op: "**", Msg: "result overflow"}
	}
	return FloatNumber(v), nil
}

// floorQuoRem computes the floored quotient and remainder, rounding the
// quotient toward negative infinity. big.Int's QuoRem truncates toward zero,
// so both results shift by one step when the signs disagree.
func floorQuoRem(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, oneInt)
		r.Add(r, b)
	}
	return q, r
}

var oneInt = big.NewInt(1)
