package calculator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// feed drives c with a compact key string: digits and '.' append, "+-*/"
// choose an operation, '=' computes, 'C' clears and '<' deletes.
func feed(c *Calculator, keys string) {
	for _, r := range keys {
		switch r {
		case '=':
			c.Compute()
		case 'C':
			c.Clear()
		case '<':
			c.DeleteLastDigit()
		default:
			if op, ok := ParseOperation(string(r)); ok {
				c.ChooseOperation(op)
				continue
			}
			c.AppendSymbol(r)
		}
	}
}

func run(keys string) *Calculator {
	c := New()
	feed(c, keys)
	return c
}

func TestNew(t *testing.T) {
	c := New()

	assert.Equal(t, "0", c.Current())
	assert.Empty(t, c.Previous())
	assert.Equal(t, OpNone, c.Operation())
	assert.Equal(t, FaultNone, c.Fault())
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestAppendSymbol(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"5", "5"},
		{"123", "123"},
		{"0", "0"},
		{"00", "0"},
		{"05", "5"},
		{".", "0."},
		{"0.5", "0.5"},
		{"3.5.", "3.5"},
		{"1..2", "1.2"},
		{"1.2.3", "1.23"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, run(tt.keys).Current(), "keys %q", tt.keys)
	}
}

func TestAppendSymbol_IgnoresOtherRunes(t *testing.T) {
	c := run("12")
	c.AppendSymbol('a')
	c.AppendSymbol('-')
	c.AppendSymbol(',')

	assert.Equal(t, "12", c.Current())
}

func TestAppendSymbol_SecondDecimalPointIsNoOp(t *testing.T) {
	c := run("3.5")
	c.AppendSymbol('.')

	assert.Equal(t, "3.5", c.Current())
}

func TestDeleteLastDigit(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"<", "0"},
		{"7<", "0"},
		{"12<", "1"},
		{"12<<", "0"},
		{"0.<", "0"},
		{"1.25<", "1.2"},
		{"1.25<<", "1."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, run(tt.keys).Current(), "keys %q", tt.keys)
	}
}

func TestDeleteLastDigit_AfterOperatorOrResult(t *testing.T) {
	c := run("12+")
	c.DeleteLastDigit()
	assert.Equal(t, "12", c.Current())

	c = run("12+3=")
	c.DeleteLastDigit()
	assert.Equal(t, "15", c.Current())
}

func TestChooseOperation_SetsPrevious(t *testing.T) {
	c := run("5+")

	assert.Equal(t, "5 +", c.Previous())
	assert.Equal(t, OpAdd, c.Operation())
	assert.Equal(t, "5", c.Current())
	assert.Equal(t, PhaseOperationPending, c.Phase())

	assert.Equal(t, "5 ×", run("5*").Previous())
	assert.Equal(t, "5 ÷", run("5/").Previous())
	assert.Equal(t, "5 -", run("5-").Previous())
}

func TestChooseOperation_InvalidIsNoOp(t *testing.T) {
	c := run("5")
	c.ChooseOperation(OpNone)
	c.ChooseOperation(Operation(42))

	assert.Empty(t, c.Previous())
	assert.Equal(t, PhaseAccumulating, c.Phase())
}

func TestChooseOperation_ReplacesPendingOperator(t *testing.T) {
	c := run("5+-")

	assert.Equal(t, "5 -", c.Previous())

	feed(c, "3=")
	assert.Equal(t, "2", c.Current())
}

func TestChaining(t *testing.T) {
	c := run("2+3+")
	assert.Equal(t, "5 +", c.Previous())
	assert.Equal(t, "5", c.Current())

	feed(c, "4=")
	assert.Equal(t, "9", c.Current())
	assert.Empty(t, c.Previous())
	assert.Equal(t, PhaseResult, c.Phase())
}

func TestChaining_LeftToRight(t *testing.T) {
	// No precedence: 2 + 3 × 4 is (2+3)×4.
	assert.Equal(t, "20", run("2+3*4=").Current())
	assert.Equal(t, "1", run("10-4-5=").Current())
	assert.Equal(t, "2", run("100/5/10=").Current())
}

func TestCompute(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"2+3=", "5"},
		{"3-5=", "-2"},
		{"6*7=", "42"},
		{"10/4=", "2.5"},
		{"1/3=", "0.33333333"},
		{"2/3=", "0.66666667"},
		{"1.5*2=", "3"},
		{"0.1+0.2=", "0.3"},
		{"0.3-0.1=", "0.2"},
		{"1.1*1.1=", "1.21"},
		{"0.000000004+0=", "0"},
		{"0.000000005+0=", "0.00000001"},
		{"0-0.000000005=", "0"},
		{"0-0.000000015=", "-0.00000001"},
		{"1000000*1000000=", "1000000000000"},
		{"5-5=", "0"},
		{"0*0.5=", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, run(tt.keys).Current(), "keys %q", tt.keys)
	}
}

func TestCompute_EqualsRightAfterOperatorReusesOperand(t *testing.T) {
	assert.Equal(t, "10", run("5+=").Current())
	assert.Equal(t, "25", run("5*=").Current())
}

func TestCompute_DivideByZero(t *testing.T) {
	for _, keys := range []string{"8/0=", "0/0=", "8.5/0.0=", "1-2/0="} {
		c := run(keys)

		assert.Equal(t, ErrorText, c.Current(), "keys %q", keys)
		assert.Empty(t, c.Previous(), "keys %q", keys)
		assert.Equal(t, OpNone, c.Operation(), "keys %q", keys)
		assert.Equal(t, FaultDivideByZero, c.Fault(), "keys %q", keys)
		assert.Equal(t, PhaseError, c.Phase(), "keys %q", keys)
	}
}

func TestCompute_Overflow(t *testing.T) {
	c := New()
	for range 400 {
		c.AppendSymbol('9')
	}
	feed(c, "+1=")

	assert.Equal(t, ErrorText, c.Current())
	assert.Equal(t, FaultOverflow, c.Fault())
}

func TestCompute_LargeFiniteResultIsNotRounded(t *testing.T) {
	c := New()
	feed(c, "1"+strings.Repeat("0", 301)+"*1=")

	assert.Equal(t, FaultNone, c.Fault())
	assert.Len(t, c.Current(), 302)
}

func TestCompute_NothingPendingIsNoOp(t *testing.T) {
	c := run("42")
	c.Compute()

	assert.Equal(t, "42", c.Current())
	assert.Equal(t, PhaseAccumulating, c.Phase())
}

func TestCompute_Idempotent(t *testing.T) {
	c := run("2+3=")
	before := *c

	c.Compute()

	assert.Equal(t, before, *c)
	assert.Equal(t, "5", c.Current())
}

func TestResult_NextDigitStartsFresh(t *testing.T) {
	c := run("2+3=7")

	assert.Equal(t, "7", c.Current())
	assert.Equal(t, PhaseAccumulating, c.Phase())
}

func TestResult_ChainsIntoNextOperation(t *testing.T) {
	assert.Equal(t, "20", run("2+3=*4=").Current())
}

func TestError_OperatorClears(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/"} {
		c := run("8/0=" + op)

		assert.Equal(t, "0", c.Current(), "op %q", op)
		assert.Empty(t, c.Previous(), "op %q", op)
		assert.Equal(t, OpNone, c.Operation(), "op %q", op)
		assert.Equal(t, PhaseIdle, c.Phase(), "op %q", op)
	}
}

func TestError_DigitStartsFresh(t *testing.T) {
	c := run("8/0=7")

	assert.Equal(t, "7", c.Current())
	assert.Equal(t, FaultNone, c.Fault())

	c = run("8/0=.")
	assert.Equal(t, "0.", c.Current())
}

func TestError_DeleteAndComputeAreNoOps(t *testing.T) {
	c := run("8/0=<=")

	assert.Equal(t, ErrorText, c.Current())
	assert.Equal(t, PhaseError, c.Phase())
}

func TestError_FoldingIntoDivideByZeroStaysInError(t *testing.T) {
	c := run("8/0+")

	assert.Equal(t, ErrorText, c.Current())
	assert.Empty(t, c.Previous())
	assert.Equal(t, PhaseError, c.Phase())

	// The next operator press clears.
	feed(c, "+")
	assert.Equal(t, "0", c.Current())
}

func TestClear(t *testing.T) {
	for _, keys := range []string{"123", "5+", "5+3", "5+3=", "8/0="} {
		c := run(keys + "C")

		assert.Equal(t, "0", c.Current(), "keys %q", keys)
		assert.Empty(t, c.Previous(), "keys %q", keys)
		assert.Equal(t, PhaseIdle, c.Phase(), "keys %q", keys)
	}
}

func TestPhase(t *testing.T) {
	tests := []struct {
		keys string
		want Phase
	}{
		{"", PhaseIdle},
		{"0", PhaseIdle},
		{"5", PhaseAccumulating},
		{"0.", PhaseAccumulating},
		{"5+", PhaseOperationPending},
		{"5+3", PhaseAccumulating},
		{"5+3=", PhaseResult},
		{"5/0=", PhaseError},
		{"5/0=+", PhaseIdle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, run(tt.keys).Phase(), "keys %q", tt.keys)
	}
}

func TestInvariant_OperationIffPrevious(t *testing.T) {
	for _, keys := range []string{"", "1", "1+", "1+2", "1+2=", "1+2+", "1/0=", "1/0=+", "1+<", ".+.="} {
		c := run(keys)
		assert.Equal(t, c.Operation() == OpNone, c.Previous() == "", "keys %q", keys)
		assert.LessOrEqual(t, strings.Count(c.Current(), "."), 1, "keys %q", keys)
	}
}

func TestRoundResult(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.30000000000000004, 0.3},
		{1.000000005, 1.00000001},
		{-1.000000005, -1.0},
		{2.5e-9, 0},
		{123.456, 123.456},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, roundResult(tt.in), 1e-12, "roundResult(%v)", tt.in)
	}
}
