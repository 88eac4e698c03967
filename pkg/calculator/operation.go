package calculator

// Operation is a binary arithmetic operation. The zero value OpNone means no
// operation is pending.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the symbol shown on the display for the operation, or an
// empty string for OpNone.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// Valid reports whether o is one of the four arithmetic operations.
func (o Operation) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// ParseOperation maps an operator symbol to an Operation. Both the display
// symbols and their ASCII keyboard spellings are accepted.
func ParseOperation(s string) (Operation, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSubtract, true
	case "*", "×", "x":
		return OpMultiply, true
	case "/", "÷":
		return OpDivide, true
	default:
		return OpNone, false
	}
}

// apply evaluates prev o cur. Division by zero is the caller's concern.
func (o Operation) apply(prev, cur float64) (float64, bool) {
	switch o {
	case OpAdd:
		return prev + cur, true
	case OpSubtract:
		return prev - cur, true
	case OpMultiply:
		return prev * cur, true
	case OpDivide:
		return prev / cur, true
	default:
		return 0, false
	}
}
