package safecalc

import (
	"math"
	"math/big"
	"testing"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		src  string
		want Number
	}{
		{"0", Int64Number(0)},
		{"5", Int64Number(5)},
		{"0005", Int64Number(5)},
		{"36893488147419103232", IntNumber(new(big.Int).Lsh(oneInt, 65))},
		{"0.5", FloatNumber(0.5)},
		{".5", FloatNumber(0.5)},
		{"5.", FloatNumber(5)},
		{"1e3", FloatNumber(1000)},
		{"1E3", FloatNumber(1000)},
		{"2.5e-2", FloatNumber(0.025)},
		{"1e400", FloatNumber(math.Inf(1))},
	}
	for _, c := range cases {
		got, err := parseNumber(c.src)
		if err != nil {
			t.Errorf("parsing %q: unexpected error: %v", c.src, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("parsing %q: want %v, got %v", c.src, c.want, got)
		}
	}
}

func TestNumberString(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{Int64Number(0), "0"},
		{Int64Number(-42), "-42"},
		{IntNumber(new(big.Int).Lsh(oneInt, 100)), "1267650600228229401496703205376"},
		{FloatNumber(0.5), "0.5"},
		{FloatNumber(1e21), "1e+21"},
		{FloatNumber(1.0 / 3), "0.3333333333333333"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("formatting %#v: want %q, got %q", c.n, c.want, got)
		}
	}
}

func TestNumberFormat(t *testing.T) {
	cases := []struct {
		n      Number
		digits int
		want   string
	}{
		// Integers never lose digits.
		{IntNumber(new(big.Int).Lsh(oneInt, 100)), 12, "1267650600228229401496703205376"},
		{FloatNumber(1.0 / 3), 12, "0.333333333333"},
		{FloatNumber(2.0 / 3), 4, "0.6667"},
		{FloatNumber(0.5), 12, "0.5"},
		{FloatNumber(math.Pi), 12, "3.14159265359"},
	}
	for _, c := range cases {
		if got := c.n.Format(c.digits); got != c.want {
			t.Errorf("formatting %v to %d digits: want %q, got %q", c.n, c.digits, c.want, got)
		}
	}
}

func TestFloorQuoRem(t *testing.T) {
	cases := []struct {
		a, b, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{0, 5, 0, 0},
		{1, 1000, 0, 1},
		{-1, 1000, -1, 999},
	}
	for _, c := range cases {
		q, r := floorQuoRem(big.NewInt(c.a), big.NewInt(c.b))
		if q.Int64() != c.q || r.Int64() != c.r {
			t.Errorf("floorQuoRem(%d, %d): want (%d, %d), got (%v, %v)", c.a, c.b, c.q, c.r, q, r)
		}
	}
}

func TestIntArithmeticStaysExact(t *testing.T) {
	big1 := IntNumber(new(big.Int).Lsh(oneInt, 80))
	ops := []struct {
		name string
		f    func(l, r Number) (Number, error)
	}{
		{"add", addNumbers},
		{"sub", subNumbers},
		{"mul", mulNumbers},
		{"floordiv", floorDivNumbers},
		{"mod", modNumbers},
		{"pow", powNumbers},
	}
	for _, op := range ops {
		n, err := op.f(big1, Int64Number(3))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", op.name, err)
			continue
		}
		if !n.IsInt() {
			t.Errorf("%s of two integers gave float %v", op.name, n)
		}
	}
	// True division always gives a float.
	n, err := divNumbers(Int64Number(4), Int64Number(2))
	if err != nil {
		t.Fatalf("div: unexpected error: %v", err)
	}
	if n.IsInt() {
		t.Errorf("div of two integers gave integer %v, want float", n)
	}
}

func TestPowGuards(t *testing.T) {
	// An exponent beyond the cap faults instead of allocating the result.
	_, err := powNumbers(Int64Number(2), Int64Number(maxIntExponent+1))
	if _, ok := err.(*ComplexityError); !ok {
		t.Errorf("huge exponent: want *ComplexityError, got %T (%v)", err, err)
	}
	// A negative integer exponent goes through float math.
	n, err := powNumbers(Int64Number(2), Int64Number(-2))
	if err != nil {
		t.Fatalf("negative exponent: unexpected error: %v", err)
	}
	if n.IsInt() || n.Float64() != 0.25 {
		t.Errorf("2**-2: want float 0.25, got %v", n)
	}
	// Float overflow faults instead of returning infinity.
	_, err = powNumbers(FloatNumber(2), Int64Number(10000))
	if _, ok := err.(*OperationError); !ok {
		t.Errorf("overflow: want *OperationError, got %T (%v)", err, err)
	}
}
