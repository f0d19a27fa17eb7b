package safecalc_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safecalc/safecalc"
)

func TestEvaluateInt(t *testing.T) {
	// Integer-only arithmetic stays exact, so the result must be an integer
	// with the given decimal representation.
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"literal", "5", "5"},
		{"big-literal", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"add-mul", "2 + 3*4", "14"},
		{"parens", "2*(3+4)", "14"},
		{"pos", "+7", "7"},
		{"double-neg", "--7", "7"},
		{"pow", "2**10", "1024"},
		{"pow-right", "2**3**2", "512"},
		{"neg-pow", "-2**2", "-4"},
		{"paren-neg-pow", "(-2)**2", "4"},
		{"big-pow", "2**200", "1606938044258990275541962092341162602522202993782792835301376"},
		{"floordiv", "7 // 2", "3"},
		{"floordiv-neg", "-7 // 2", "-4"},
		{"floordiv-neg-divisor", "7 // -3", "-3"},
		{"mod", "7 % 2", "1"},
		{"mod-neg", "-7 % 2", "1"},
		{"mod-neg-divisor", "7 % -2", "-1"},
		{"abs", "abs(-3)", "3"},
		{"floor", "floor(2.7)", "2"},
		{"floor-neg", "floor(-2.1)", "-3"},
		{"ceil", "ceil(2.1)", "3"},
		{"ceil-neg", "ceil(-2.1)", "-2"},
		{"factorial", "factorial(5)", "120"},
		{"factorial-zero", "factorial(0)", "1"},
		{"factorial-big", "factorial(25)", "15511210043330985984000000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := safecalc.Evaluate(c.src)
			require.NoError(t, err)
			require.True(t, n.IsInt(), "%q gave float %v, want integer", c.src, n)
			assert.Equal(t, c.want, n.String())
		})
	}
}

func TestEvaluateFloat(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"div", "1/2", 0.5},
		{"div-ints", "10/5", 2},
		{"literal", "2.5", 2.5},
		{"leading-dot", ".5 + .25", 0.75},
		{"exponent", "2.5e2", 250},
		{"int-exponent", "1e3", 1000},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"mixed-add", "1 + 0.5", 1.5},
		{"float-floordiv", "7.0 // 2", 3},
		{"float-mod", "7.5 % 2", 1.5},
		{"neg-float-mod", "-7.5 % 2", 0.5},
		{"neg-exp", "2**-1", 0.5},
		{"float-pow", "2.0**10", 1024},
		{"sqrt-sin", "sqrt(16) + sin(0)", 4},
		{"cos", "cos(0)", 1},
		{"exp-zero", "exp(0)", 1},
		{"log10", "log10(1000)", 3},
		{"log-base", "log(100, 10)", 2},
		{"pow-func", "pow(2, 10)", 1024},
		{"radians", "radians(180)", math.Pi},
		{"degrees", "degrees(pi)", 180},
		{"abs-float", "abs(-2.5)", 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := safecalc.Evaluate(c.src)
			require.NoError(t, err)
			require.False(t, n.IsInt(), "%q gave integer %v, want float", c.src, n)
			assert.InDelta(t, c.want, n.Float64(), 1e-9)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind safecalc.ErrorKind
	}{
		{"empty", "", safecalc.ErrSyntax},
		{"blank", "   ", safecalc.ErrSyntax},
		{"trailing-op", "1+", safecalc.ErrSyntax},
		{"unbalanced", "(1+2", safecalc.ErrSyntax},
		{"adjacent", "1 2", safecalc.ErrSyntax},

		{"assignment", "x = 1", safecalc.ErrDisallowed},
		{"attribute", "os.system('ls')", safecalc.ErrDisallowed},
		{"subscript", "a[0]", safecalc.ErrDisallowed},
		{"string", "'ls'", safecalc.ErrDisallowed},
		{"keyword", "lambda x", safecalc.ErrDisallowed},
		{"call-value", "2(3)", safecalc.ErrDisallowed},

		{"unknown-ident", "xyz", safecalc.ErrUnknownIdent},
		{"lowercase-true", "true", safecalc.ErrUnknownIdent},
		{"unknown-func", "unknown_fn(1)", safecalc.ErrUnknownFunc},
		{"dunder-func", "__import__(1)", safecalc.ErrUnknownFunc},
		{"const-as-func", "pi(1)", safecalc.ErrUnknownFunc},

		{"no-args", "sin()", safecalc.ErrBadArguments},
		{"extra-args", "sin(1, 2)", safecalc.ErrBadArguments},
		{"log-extra-args", "log(1, 2, 3)", safecalc.ErrBadArguments},
		{"sqrt-neg", "sqrt(-1)", safecalc.ErrBadArguments},
		{"asin-domain", "asin(2)", safecalc.ErrBadArguments},
		{"log-domain", "log(-1)", safecalc.ErrBadArguments},
		{"log-bad-base", "log(100, 1)", safecalc.ErrBadArguments},
		{"exp-range", "exp(1000)", safecalc.ErrBadArguments},
		{"pow-zero-neg", "pow(0, -1)", safecalc.ErrBadArguments},
		{"factorial-neg", "factorial(-1)", safecalc.ErrBadArguments},
		{"factorial-frac", "factorial(2.5)", safecalc.ErrBadArguments},

		{"div-zero", "1/0", safecalc.ErrOperation},
		{"div-float-zero", "1/0.0", safecalc.ErrOperation},
		{"floordiv-zero", "1//0", safecalc.ErrOperation},
		{"mod-zero", "1%0", safecalc.ErrOperation},
		{"zero-neg-pow", "0**-1", safecalc.ErrOperation},
		{"neg-frac-pow", "(-8)**0.5", safecalc.ErrOperation},
		{"float-pow-overflow", "2.0**10000", safecalc.ErrOperation},

		{"huge-exponent", "2**10000000", safecalc.ErrTooComplex},
		{"huge-factorial", "factorial(200000)", safecalc.ErrTooComplex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := safecalc.Evaluate(c.src)
			require.Error(t, err)
			kind, ok := safecalc.Kind(err)
			require.True(t, ok, "error %T is not a safecalc error", err)
			assert.Equal(t, c.kind, kind, "error: %v", err)
		})
	}
}

func TestEvaluateDeepNesting(t *testing.T) {
	src := strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000)
	_, err := safecalc.Evaluate(src)
	require.Error(t, err)
	kind, ok := safecalc.Kind(err)
	require.True(t, ok)
	assert.Equal(t, safecalc.ErrTooComplex, kind)
}

func TestEvaluateIdempotent(t *testing.T) {
	// An Expr has no state, so evaluating it repeatedly always gives the same
	// answer.
	for _, src := range []string{"2 + 3*4", "sqrt(2)", "factorial(10) / 7"} {
		e, err := safecalc.ParseString(src)
		require.NoError(t, err)
		a, err := e.Eval()
		require.NoError(t, err)
		b, err := e.Eval()
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "%q: %v != %v", src, a, b)
	}
}

func TestEvaluateRoundTrip(t *testing.T) {
	// Formatting a result and evaluating the formatted text gives the value
	// back.
	for _, src := range []string{"5", "factorial(30)", "1/3", "2.5e-2", "pi"} {
		n, err := safecalc.Evaluate(src)
		require.NoError(t, err)
		m, err := safecalc.Evaluate(n.String())
		require.NoError(t, err)
		assert.True(t, n.Equal(m), "%q: %v does not round-trip (got %v)", src, n, m)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	e, err := safecalc.ParseString("sqrt(radians(180)**2) * 2")
	require.NoError(t, err)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				n, err := e.Eval()
				assert.NoError(t, err)
				assert.InDelta(t, 2*math.Pi, n.Float64(), 1e-9)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
