// Package keymap translates raw key names from a keyboard, a browser or a
// script into calculator actions, and applies those actions to anything with
// the calculator's method set.
package keymap

import (
	"strings"
	"unicode/utf8"

	"github.com/germanamz/abacus/pkg/calculator"
)

// Kind identifies what an Action does.
type Kind int

const (
	KindSymbol Kind = iota + 1
	KindOperator
	KindEquals
	KindClear
	KindDelete
)

// Action is one calculator input.
type Action struct {
	Kind   Kind
	Symbol rune                 // set for KindSymbol: '0'-'9' or '.'
	Op     calculator.Operation // set for KindOperator
}

// Symbol returns the action that appends r to the current operand.
func Symbol(r rune) Action { return Action{Kind: KindSymbol, Symbol: r} }

// Operator returns the action that chooses op.
func Operator(op calculator.Operation) Action { return Action{Kind: KindOperator, Op: op} }

// Equals returns the action that computes the pending operation.
func Equals() Action { return Action{Kind: KindEquals} }

// Clear returns the action that clears the calculator.
func Clear() Action { return Action{Kind: KindClear} }

// Delete returns the action that removes the last digit.
func Delete() Action { return Action{Kind: KindDelete} }

// namedKeys maps multi-rune key names (as reported by terminals and browsers,
// lowercased) to actions.
var namedKeys = map[string]Action{
	"enter":     Equals(),
	"return":    Equals(),
	"esc":       Clear(),
	"escape":    Clear(),
	"backspace": Delete(),
	"delete":    Delete(),
	"del":       Delete(),
}

// Lookup returns the action bound to key. Single runes are matched as is;
// longer key names case-insensitively.
func Lookup(key string) (Action, bool) {
	if utf8.RuneCountInString(key) != 1 {
		a, ok := namedKeys[strings.ToLower(key)]
		return a, ok
	}

	r, _ := utf8.DecodeRuneInString(key)
	switch {
	case r >= '0' && r <= '9':
		return Symbol(r), true
	case r == '.' || r == ',':
		return Symbol('.'), true
	case r == '=':
		return Equals(), true
	case r == 'c' || r == 'C':
		return Clear(), true
	}

	if op, ok := calculator.ParseOperation(key); ok {
		return Operator(op), true
	}

	return Action{}, false
}

// Label returns the keypad label of the button the action corresponds to.
func (a Action) Label() string {
	switch a.Kind {
	case KindSymbol:
		return string(a.Symbol)
	case KindOperator:
		return a.Op.Symbol()
	case KindEquals:
		return "="
	case KindClear:
		return "C"
	case KindDelete:
		return "⌫"
	default:
		return ""
	}
}

// Token returns a key name that Lookup maps back to the action.
func (a Action) Token() string {
	switch a.Kind {
	case KindSymbol:
		return string(a.Symbol)
	case KindOperator:
		switch a.Op {
		case calculator.OpMultiply:
			return "*"
		case calculator.OpDivide:
			return "/"
		default:
			return a.Op.Symbol()
		}
	case KindEquals:
		return "="
	case KindClear:
		return "esc"
	case KindDelete:
		return "backspace"
	default:
		return ""
	}
}

// Driver is the set of calculator operations an Action can invoke.
// *calculator.Calculator implements it.
type Driver interface {
	Clear()
	DeleteLastDigit()
	AppendSymbol(r rune)
	ChooseOperation(op calculator.Operation)
	Compute()
}

// Apply invokes the operation a stands for on d.
func Apply(d Driver, a Action) {
	switch a.Kind {
	case KindSymbol:
		d.AppendSymbol(a.Symbol)
	case KindOperator:
		d.ChooseOperation(a.Op)
	case KindEquals:
		d.Compute()
	case KindClear:
		d.Clear()
	case KindDelete:
		d.DeleteLastDigit()
	}
}
