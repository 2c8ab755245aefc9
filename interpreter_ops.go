// interpreter_ops.go — expression evaluation and operator semantics.
//
// Pure value computation: arithmetic promotion, comparisons, truthiness.
// Kept separate from interpreter_exec.go so statement-execution control
// flow (which needs to thread the `return` signal) never has to reason
// about operator arithmetic, and vice versa.
package wisp

import "math"

func (ip *Interpreter) eval(e Expr) (Value, error) {
	switch expr := e.(type) {
	case *LiteralExpr:
		return literalValue(expr), nil
	case *VariableExpr:
		v, ok := ip.current.Get(expr.Name.Lexeme)
		if !ok {
			return Value{}, &RuntimeError{Line: expr.Name.Line, Msg: "undefined variable '" + expr.Name.Lexeme + "'"}
		}
		return v, nil
	case *GroupingExpr:
		return ip.eval(expr.Inner)
	case *UnaryExpr:
		return ip.evalUnary(expr)
	case *AssignExpr:
		v, err := ip.eval(expr.Value)
		if err != nil {
			return Value{}, err
		}
		ip.current.Assign(expr.Name.Lexeme, v)
		return v, nil
	case *CallExpr:
		return ip.evalCall(expr)
	case *BinaryExpr:
		return ip.evalBinary(expr)
	default:
		return Value{}, &RuntimeError{Msg: "unrecognized expression"}
	}
}

func literalValue(e *LiteralExpr) Value {
	switch v := e.Value.(type) {
	case nil:
		return NoneValue()
	case bool:
		return BoolValue(v)
	case int64:
		return IntValue(v)
	case float64:
		return FloatValue(v)
	case string:
		return StringValue(v)
	default:
		return NoneValue()
	}
}

// truthy implements the language's truthiness rule: None, False, and
// zero-valued numbers/strings are false, everything else (including every
// function) is true.
func truthy(v Value) bool {
	switch v.Tag {
	case VNone:
		return false
	case VBool:
		return v.AsBool()
	case VInt:
		return v.AsInt() != 0
	case VFloat:
		return v.AsFloat() != 0
	case VString:
		return len(v.AsString()) > 0
	case VFunction:
		return true
	default:
		return false
	}
}

func (ip *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := ip.eval(e.Right)
	if err != nil {
		return Value{}, err
	}
	switch e.Op.Type {
	case TokNot:
		return BoolValue(!truthy(right)), nil
	case TokMinus:
		switch right.Tag {
		case VInt:
			return IntValue(-right.AsInt()), nil
		case VFloat:
			return FloatValue(-right.AsFloat()), nil
		default:
			return Value{}, &RuntimeError{Line: e.Op.Line, Msg: "unary '-' requires a number"}
		}
	default:
		return Value{}, &RuntimeError{Line: e.Op.Line, Msg: "unrecognized unary operator"}
	}
}

func (ip *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := ip.eval(e.Callee)
	if err != nil {
		return Value{}, err
	}
	if callee.Tag != VFunction {
		return Value{}, &RuntimeError{Line: e.Paren.Line, Msg: "called value is not a function"}
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ip.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return ip.callFunction(callee.AsFunction(), args, e.Paren)
}

func (ip *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	switch e.Op.Type {
	case TokAnd:
		left, err := ip.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		if !truthy(left) {
			return left, nil
		}
		return ip.eval(e.Right)
	case TokOr:
		left, err := ip.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		if truthy(left) {
			return left, nil
		}
		return ip.eval(e.Right)
	}

	left, err := ip.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := ip.eval(e.Right)
	if err != nil {
		return Value{}, err
	}
	return binaryOp(e.Op, left, right)
}

func isNumeric(v Value) bool { return v.Tag == VInt || v.Tag == VFloat }

func asFloat(v Value) float64 {
	if v.Tag == VInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

func binaryOp(op Token, left, right Value) (Value, error) {
	switch op.Type {
	case TokPlus:
		if left.Tag == VString && right.Tag == VString {
			return StringValue(left.AsString() + right.AsString()), nil
		}
		if isNumeric(left) && isNumeric(right) {
			return numericBinary(left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
		}
		return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for +"}

	case TokMinus:
		if isNumeric(left) && isNumeric(right) {
			return numericBinary(left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
		}
		return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for -"}

	case TokStar:
		if left.Tag == VString && right.Tag == VInt {
			return StringValue(repeatString(left.AsString(), right.AsInt())), nil
		}
		if left.Tag == VInt && right.Tag == VString {
			return StringValue(repeatString(right.AsString(), left.AsInt())), nil
		}
		if isNumeric(left) && isNumeric(right) {
			return numericBinary(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
		}
		return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for *"}

	case TokSlash:
		if !isNumeric(left) || !isNumeric(right) {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for /"}
		}
		if asFloat(right) == 0 {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "division by zero"}
		}
		return FloatValue(asFloat(left) / asFloat(right)), nil

	case TokDoubleSlash:
		if !isNumeric(left) || !isNumeric(right) {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for //"}
		}
		if left.Tag == VInt && right.Tag == VInt {
			if right.AsInt() == 0 {
				return Value{}, &RuntimeError{Line: op.Line, Msg: "division by zero"}
			}
			return IntValue(floorDivInt(left.AsInt(), right.AsInt())), nil
		}
		if asFloat(right) == 0 {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "division by zero"}
		}
		return FloatValue(math.Floor(asFloat(left) / asFloat(right))), nil

	case TokPercent:
		if !isNumeric(left) || !isNumeric(right) {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for %"}
		}
		if left.Tag == VInt && right.Tag == VInt {
			if right.AsInt() == 0 {
				return Value{}, &RuntimeError{Line: op.Line, Msg: "modulo by zero"}
			}
			return IntValue(floorModInt(left.AsInt(), right.AsInt())), nil
		}
		if asFloat(right) == 0 {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "modulo by zero"}
		}
		return FloatValue(floorModFloat(asFloat(left), asFloat(right))), nil

	case TokDoubleStar:
		if !isNumeric(left) || !isNumeric(right) {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for **"}
		}
		result := math.Pow(asFloat(left), asFloat(right))
		if left.Tag == VInt && right.Tag == VInt && right.AsInt() >= 0 &&
			result == math.Trunc(result) && !math.IsInf(result, 0) &&
			result >= -9.223372036854775e18 && result < 9.223372036854775e18 {
			return IntValue(int64(result)), nil
		}
		return FloatValue(result), nil

	case TokEqEq:
		return BoolValue(valuesEqual(left, right)), nil
	case TokBangEq:
		return BoolValue(!valuesEqual(left, right)), nil

	case TokLess, TokLessEq, TokGreater, TokGreaterEq:
		if !isNumeric(left) || !isNumeric(right) {
			return Value{}, &RuntimeError{Line: op.Line, Msg: "unsupported operand types for comparison"}
		}
		a, b := asFloat(left), asFloat(right)
		switch op.Type {
		case TokLess:
			return BoolValue(a < b), nil
		case TokLessEq:
			return BoolValue(a <= b), nil
		case TokGreater:
			return BoolValue(a > b), nil
		default:
			return BoolValue(a >= b), nil
		}

	default:
		return Value{}, &RuntimeError{Line: op.Line, Msg: "unrecognized binary operator"}
	}
}

// numericBinary promotes to float iff either operand is float.
func numericBinary(left, right Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) Value {
	if left.Tag == VInt && right.Tag == VInt {
		return IntValue(intOp(left.AsInt(), right.AsInt()))
	}
	return FloatValue(floatOp(asFloat(left), asFloat(right)))
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, int64(len(s))*n)
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// floorDivInt and floorModInt implement floor semantics for both `//` and
// `%`: the quotient is rounded toward negative infinity and a nonzero
// remainder's sign always matches the divisor's (see DESIGN.md for
// why this was chosen over truncated-toward-zero division).
func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func floorModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func valuesEqual(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return asFloat(a) == asFloat(b)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VNone:
		return true
	case VBool:
		return a.AsBool() == b.AsBool()
	case VString:
		return a.AsString() == b.AsString()
	case VFunction:
		return a.AsFunction() == b.AsFunction()
	default:
		return false
	}
}
