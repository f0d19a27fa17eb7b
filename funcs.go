package safecalc

import (
	"math"
	"math/big"
	"sort"
	"strconv"
)

// mathFunc is an entry in the function whitelist: the accepted argument
// counts and the implementation. Argument counts and domains are checked at
// evaluation time, not parse time.
type mathFunc struct {
	// min and max are the accepted argument counts, inclusive.
	min, max int
	// apply computes the result. len(args) is within [min, max].
	apply func(name string, args []Number) (Number, error)
}

func (f *mathFunc) call(name string, args []Number) (Number, error) {
	if len(args) < f.min || len(args) > f.max {
		return Number{}, &ArgumentError{Func: name, Msg: arityMsg(f.min, f.max, len(args))}
	}
	return f.apply(name, args)
}

func arityMsg(min, max, got int) string {
	want := strconv.Itoa(min)
	switch {
	case min == max && min == 1:
		want += " argument"
	case min == max:
		want += " arguments"
	default:
		want += " to " + strconv.Itoa(max) + " arguments"
	}
	return "takes " + want + ", got " + strconv.Itoa(got)
}

// funcTable is the whitelist of callable functions. It is built once and
// never mutated; call names resolve against it and nothing else.
var funcTable = map[string]*mathFunc{
	"sin":  floatFunc(math.Sin),
	"cos":  floatFunc(math.Cos),
	"tan":  floatFunc(math.Tan),
	"asin": domainFunc(math.Asin, func(x float64) bool { return -1 <= x && x <= 1 }),
	"acos": domainFunc(math.Acos, func(x float64) bool { return -1 <= x && x <= 1 }),
	"atan": floatFunc(math.Atan),
	"sqrt": domainFunc(math.Sqrt, func(x float64) bool { return x >= 0 }),

	"log":   {min: 1, max: 2, apply: applyLog},
	"log10": domainFunc(math.Log10, func(x float64) bool { return x > 0 }),
	"exp":   floatFunc(math.Exp),
	"pow":   {min: 2, max: 2, apply: applyPow},

	"abs":       {min: 1, max: 1, apply: applyAbs},
	"floor":     {min: 1, max: 1, apply: applyFloor},
	"ceil":      {min: 1, max: 1, apply: applyCeil},
	"factorial": {min: 1, max: 1, apply: applyFactorial},

	"radians": floatFunc(func(x float64) float64 { return x * (math.Pi / 180) }),
	"degrees": floatFunc(func(x float64) float64 { return x * (180 / math.Pi) }),
}

// Functions returns the sorted names of the functions expressions may call.
func Functions() []string {
	names := make([]string, 0, len(funcTable))
	for k := range funcTable {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// floatFunc wraps a one-argument float function. A result that overflows the
// double range on finite input is reported rather than returned as infinity.
func floatFunc(f func(float64) float64) *mathFunc {
	return &mathFunc{min: 1, max: 1, apply: func(name string, args []Number) (Number, error) {
		x := args[0].Float64()
		v := f(x)
		if math.IsInf(v, 0) && !math.IsInf(x, 0) {
			return Number{}, &ArgumentError{Func: name, Msg: "math range error"}
		}
		return FloatNumber(v), nil
	}}
}

// domainFunc wraps a one-argument float function whose domain is restricted.
func domainFunc(f func(float64) float64, ok func(float64) bool) *mathFunc {
	return &mathFunc{min: 1, max: 1, apply: func(name string, args []Number) (Number, error) {
		x := args[0].Float64()
		if !ok(x) {
			return Number{}, &ArgumentError{Func: name, Msg: "math domain error"}
		}
		return FloatNumber(f(x)), nil
	}}
}

// applyLog is the natural logarithm with one argument and the logarithm in an
// arbitrary base with two. Both forms share the one whitelist name.
func applyLog(name string, args []Number) (Number, error) {
	x := args[0].Float64()
	if x <= 0 {
		return Number{}, &ArgumentError{Func: name, Msg: "math domain error"}
	}
	if len(args) == 1 {
		return FloatNumber(math.Log(x)), nil
	}
	base := args[1].Float64()
	if base <= 0 || base == 1 {
		return Number{}, &ArgumentError{Func: name, Msg: "math domain error"}
	}
	return FloatNumber(math.Log(x) / math.Log(base)), nil
}

// applyPow is float exponentiation with the same real-valued restrictions as
// the ** operator, except that the result is always a float.
func applyPow(name string, args []Number) (Number, error) {
	x, y := args[0].Float64(), args[1].Float64()
	switch {
	case x == 0 && y < 0 && !math.IsInf(y, -1):
		return Number{}, &ArgumentError{Func: name, Msg: "math domain error"}
	case x < 0 && y != math.Trunc(y) && !math.IsInf(y, 0):
		return Number{}, &ArgumentError{Func: name, Msg: "math domain error"}
	}
	v := math.Pow(x, y)
	if math.IsInf(v, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Number{}, &ArgumentError{Func: name, Msg: "math range error"}
	}
	return FloatNumber(v), nil
}

func applyAbs(name string, args []Number) (Number, error) {
	v := args[0]
	if v.IsInt() {
		return Number{i: new(big.Int).Abs(v.i)}, nil
	}
	return FloatNumber(math.Abs(v.f)), nil
}

func applyFloor(name string, args []Number) (Number, error) {
	v := args[0]
	if v.IsInt() {
		return v, nil
	}
	return floatToInt(name, math.Floor(v.f))
}

func applyCeil(name string, args []Number) (Number, error) {
	v := args[0]
	if v.IsInt() {
		return v, nil
	}
	return floatToInt(name, math.Ceil(v.f))
}

// floatToInt converts an integral float to an exact integer Number.
func floatToInt(name string, f float64) (Number, error) {
	switch {
	case math.IsNaN(f):
		return Number{}, &ArgumentError{Func: name, Msg: "cannot convert float NaN to integer"}
	case math.IsInf(f, 0):
		return Number{}, &ArgumentError{Func: name, Msg: "cannot convert float infinity to integer"}
	}
	i, _ := big.NewFloat(f).Int(nil)
	return Number{i: i}, nil
}

func applyFactorial(name string, args []Number) (Number, error) {
	v := args[0]
	var n *big.Int
	if v.IsInt() {
		n = v.i
	} else {
		if math.Trunc(v.f) != v.f || math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return Number{}, &ArgumentError{Func: name, Msg: "factorial() only accepts integral values"}
		}
		n, _ = big.NewFloat(v.f).Int(nil)
	}
	if n.Sign() < 0 {
		return Number{}, &ArgumentError{Func: name, Msg: "factorial() not defined for negative values"}
	}
	if !n.IsInt64() || n.Int64() > maxFactorial {
		return Number{}, &ComplexityError{What: "factorial argument too large"}
	}
	return Number{i: new(big.Int).MulRange(1, n.Int64())}, nil
}
