package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrorText is what Current returns while the calculator is in the error state.
const ErrorText = "Error"

// decimalPlaces is the number of fractional digits results are rounded to.
const decimalPlaces = 8

var roundingScale = math.Pow10(decimalPlaces)

// Calculator is the accumulator state machine. Use New to create one; the
// zero value is not ready for use.
type Calculator struct {
	current  string // decimal text being typed; meaningless while fault is set
	previous string // pending operand text, without the operation symbol
	op       Operation
	fault    Fault
	reset    bool // the next digit or decimal point starts a fresh operand
}

// New returns a Calculator in the cleared state.
func New() *Calculator {
	c := &Calculator{}
	c.Clear()
	return c
}

// Clear resets the calculator to "0" with nothing pending.
func (c *Calculator) Clear() {
	c.current = "0"
	c.previous = ""
	c.op = OpNone
	c.fault = FaultNone
	c.reset = false
}

// DeleteLastDigit removes the last character of the current operand. It does
// nothing on "0" or right after an operator, a result or an error. Deleting
// the only remaining character leaves "0".
func (c *Calculator) DeleteLastDigit() {
	if c.current == "0" || c.reset {
		return
	}

	if len(c.current) == 1 {
		c.current = "0"
		return
	}

	c.current = c.current[:len(c.current)-1]
}

// AppendSymbol appends a digit or the decimal point to the current operand.
// After an operator, a result or an error the operand is first reset to "0".
// A second decimal point is ignored, a leading zero is replaced, and any rune
// that is not 0-9 or '.' is ignored.
func (c *Calculator) AppendSymbol(r rune) {
	if !IsSymbol(r) {
		return
	}

	if c.reset {
		c.current = "0"
		c.fault = FaultNone
		c.reset = false
	}

	if r == '.' && strings.ContainsRune(c.current, '.') {
		return
	}

	if c.current == "0" && r != '.' {
		c.current = string(r)
		return
	}

	c.current += string(r)
}

// ChooseOperation makes op the pending operation with the current operand as
// its left-hand side. If another operation is pending and a new operand has
// been typed since, that operation is computed first. In the error state any
// operator clears the calculator instead.
func (c *Calculator) ChooseOperation(op Operation) {
	if !op.Valid() {
		return
	}

	if c.fault != FaultNone {
		c.Clear()
		return
	}

	if c.op != OpNone && !c.reset {
		c.Compute()
		if c.fault != FaultNone {
			return
		}
	}

	c.op = op
	c.previous = c.current
	c.reset = true
}

// Compute applies the pending operation to the previous and current operands.
// It does nothing when no operation is pending or an operand does not parse.
// Division by zero and non-finite results put the calculator in the error
// state; otherwise the result, rounded to eight decimal places, becomes the
// current operand.
func (c *Calculator) Compute() {
	if c.op == OpNone || c.fault != FaultNone {
		return
	}

	prev, err := parseOperand(c.previous)
	if err != nil {
		return
	}

	cur, err := parseOperand(c.current)
	if err != nil {
		return
	}

	if c.op == OpDivide && cur == 0 {
		c.fail(FaultDivideByZero)
		return
	}

	v, ok := c.op.apply(prev, cur)
	if !ok {
		return
	}

	v = roundResult(v)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		c.fail(FaultOverflow)
		return
	}

	c.current = formatOperand(v)
	c.op = OpNone
	c.previous = ""
	c.reset = true
}

// Current returns the operand being typed or the last result, or ErrorText
// in the error state.
func (c *Calculator) Current() string {
	if c.fault != FaultNone {
		return ErrorText
	}
	return c.current
}

// Previous returns the pending operand followed by the operation symbol
// (e.g. "5 +"), or an empty string when nothing is pending.
func (c *Calculator) Previous() string {
	if c.op == OpNone {
		return ""
	}
	return c.previous + " " + c.op.Symbol()
}

// Operation returns the pending operation.
func (c *Calculator) Operation() Operation { return c.op }

// Fault returns why the calculator is in the error state, or FaultNone.
func (c *Calculator) Fault() Fault { return c.fault }

// Phase returns the logical state of the calculator.
func (c *Calculator) Phase() Phase {
	switch {
	case c.fault != FaultNone:
		return PhaseError
	case c.op != OpNone && c.reset:
		return PhaseOperationPending
	case c.op == OpNone && c.reset:
		return PhaseResult
	case c.op == OpNone && c.current == "0":
		return PhaseIdle
	default:
		return PhaseAccumulating
	}
}

func (c *Calculator) fail(f Fault) {
	c.fault = f
	c.previous = ""
	c.op = OpNone
	c.reset = true
}

// IsSymbol reports whether r can be appended to an operand.
func IsSymbol(r rune) bool {
	return r == '.' || (r >= '0' && r <= '9')
}

// parseOperand parses operand text. Values too large for a float64 parse as
// infinities so that the result check reports them as an overflow.
func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return v, nil
	}

	return 0, err
}

// roundResult rounds v to eight decimal places, halves rounding up towards
// positive infinity. Magnitudes where the scaled value would overflow carry
// no fractional digits and are returned unchanged.
func roundResult(v float64) float64 {
	scaled := v * roundingScale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}

	r := math.Floor(scaled)
	if scaled-r >= 0.5 {
		r++
	}

	return r / roundingScale
}

// formatOperand renders v as plain decimal text without an exponent.
func formatOperand(v float64) string {
	if v == 0 {
		return "0" // also drops the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
