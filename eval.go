package safecalc

import (
	"math"
	"sort"
)

// Guards against expressions that would stall or exhaust the process. Parse,
// check, and eval recursion all stop at maxDepth; the value guards stop exact
// integer results from growing without bound.
const (
	maxDepth       = 256
	maxIntExponent = 1_000_000
	maxFactorial   = 100_000
)

// binaryOps is the whitelist of binary operators. It maps each binary node
// kind to a strict two-argument numeric function and is never mutated after
// initialization; the evaluator consults it instead of dispatching on
// anything the input controls.
var binaryOps = map[nodeKind]func(l, r Number) (Number, error){
	nodeAdd:      addNumbers,
	nodeSub:      subNumbers,
	nodeMul:      mulNumbers,
	nodeDiv:      divNumbers,
	nodeFloorDiv: floorDivNumbers,
	nodeMod:      modNumbers,
	nodePow:      powNumbers,
}

// unaryOps is the whitelist of unary operators.
var unaryOps = map[nodeKind]func(v Number) (Number, error){
	nodePos: posNumber,
	nodeNeg: negNumber,
}

// constants is the whitelist of named constants. Identifiers resolve against
// this table and nothing else.
var constants = map[string]Number{
	"pi": FloatNumber(math.Pi),
	"e":  FloatNumber(math.E),
}

// Constants returns the sorted names of the constants expressions may use.
func Constants() []string {
	names := make([]string, 0, len(constants))
	for k := range constants {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// eval evaluates the subtree bottom-up: children first, left before right,
// then the parent combines the results through the operator and function
// tables. Every fault comes back as an Error value; nothing panics on input.
func (n *node) eval(depth int) (Number, error) {
	if depth > maxDepth {
		return Number{}, &ComplexityError{What: "nesting too deep"}
	}
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := constants[n.name]
		if !ok {
			return Number{}, &NameError{Name: n.name}
		}
		return v, nil
	case nodePos, nodeNeg:
		v, err := n.left.eval(depth + 1)
		if err != nil {
			return Number{}, err
		}
		return unaryOps[n.kind](v)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		l, err := n.left.eval(depth + 1)
		if err != nil {
			return Number{}, err
		}
		r, err := n.right.eval(depth + 1)
		if err != nil {
			return Number{}, err
		}
		return binaryOps[n.kind](l, r)
	case nodeCall:
		args := make([]Number, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(depth + 1)
			if err != nil {
				return Number{}, err
			}
			args[i] = v
		}
		f, ok := funcTable[n.name]
		if !ok {
			return Number{}, &FuncError{Name: n.name}
		}
		return f.call(n.name, args)
	default:
		// check runs before eval, so an invalid kind here is a bug, not input.
		panic("safecalc: invalid AST node " + n.kind.String())
	}
}
