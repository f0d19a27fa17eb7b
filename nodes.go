package safecalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Exactly six
// shapes exist: number literals, identifiers, calls, unary operations, and
// binary operations (one kind per operator). Nothing else can be represented,
// and check rejects anything else that might appear anyway.
type node struct {
	kind nodeKind

	// num is the literal value for nodeNum.
	num Number
	// name is the identifier for nodeName and the function name for nodeCall.
	name string

	// left and right are the operands of unary (left only) and binary nodes.
	left  *node
	right *node
	// args are the call arguments for nodeCall, in order.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal value
	nodeName // constant lookup

	nodeCall // name(args...)

	nodePos // +x
	nodeNeg // -x

	nodeAdd      // x + y
	nodeSub      // x - y
	nodeMul      // x * y
	nodeDiv      // x / y
	nodeFloorDiv // x // y
	nodeMod      // x % y
	nodePow      // x ** y
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodePos:
		return "Pos"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeFloorDiv:
		return "FloorDiv"
	case nodeMod:
		return "Mod"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// opsym returns the operator symbol for unary and binary node kinds.
func (k nodeKind) opsym() string {
	switch k {
	case nodePos:
		return "+"
	case nodeNeg:
		return "-"
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeFloorDiv:
		return "//"
	case nodeMod:
		return "%"
	case nodePow:
		return "**"
	default:
		return ""
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized representation of the subtree.
func (n *node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteByte('?')
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNum:
		b.WriteString(n.num.String())
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodePos, nodeNeg:
		b.WriteString(n.kind.opsym())
		n.left.fmt(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		n.left.fmt(b)
		b.WriteString(" " + n.kind.opsym() + " ")
		n.right.fmt(b)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		b.WriteString(n.kind.String())
		b.WriteByte('$')
	}
}

// check walks the full tree and rejects any node shape outside the six
// whitelisted kinds, as well as malformed nodes with missing operands. The
// parser cannot produce such trees, but evaluation trusts nothing it has not
// verified, so this pass runs independently before every Eval. It also
// enforces the nesting depth limit, which bounds the recursion in eval.
func (n *node) check(depth int) error {
	if depth > maxDepth {
		return &ComplexityError{What: "nesting too deep"}
	}
	if n == nil {
		return &DisallowedError{Construct: "missing subexpression"}
	}
	switch n.kind {
	case nodeNum:
		if n.left != nil || n.right != nil || n.args != nil {
			return &DisallowedError{Construct: "malformed literal"}
		}
	case nodeName:
		if n.name == "" || n.left != nil || n.right != nil || n.args != nil {
			return &DisallowedError{Construct: "malformed identifier"}
		}
	case nodeCall:
		if n.name == "" || n.left != nil || n.right != nil {
			return &DisallowedError{Construct: "call of a non-name"}
		}
		for _, a := range n.args {
			if err := a.check(depth + 1); err != nil {
				return err
			}
		}
	case nodePos, nodeNeg:
		if n.right != nil || n.args != nil {
			return &DisallowedError{Construct: "malformed unary operation"}
		}
		if err := n.left.check(depth + 1); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		if n.args != nil {
			return &DisallowedError{Construct: "malformed binary operation"}
		}
		if err := n.left.check(depth + 1); err != nil {
			return err
		}
		if err := n.right.check(depth + 1); err != nil {
			return err
		}
	default:
		return &DisallowedError{Construct: "unsupported node " + n.kind.String()}
	}
	return nil
}
