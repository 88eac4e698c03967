// Package keypad lays out and renders the calculator's button grid.
package keypad

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/abacus/cmd/abacus/internal/styles"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/keymap"
)

// Columns is the number of key widths in every row.
const Columns = 4

// Key is one button. Span is how many columns it covers; zero means one.
type Key struct {
	Action keymap.Action
	Span   int
}

func (k Key) span() int {
	if k.Span <= 0 {
		return 1
	}
	return k.Span
}

func digit(r rune) Key { return Key{Action: keymap.Symbol(r)} }

func op(o calculator.Operation) Key { return Key{Action: keymap.Operator(o)} }

// Layout is the button grid, top row first.
var Layout = [][]Key{
	{{Action: keymap.Clear()}, {Action: keymap.Delete()}, op(calculator.OpDivide), op(calculator.OpMultiply)},
	{digit('7'), digit('8'), digit('9'), op(calculator.OpSubtract)},
	{digit('4'), digit('5'), digit('6'), op(calculator.OpAdd)},
	{digit('1'), digit('2'), digit('3'), digit('.')},
	{{Action: keymap.Symbol('0'), Span: 2}, {Action: keymap.Equals(), Span: 2}},
}

// Keypad renders Layout.
type Keypad struct {
	// CellWidth is the inner width of a one-column key.
	CellWidth int
	// Decimal labels the decimal point key.
	Decimal string
}

// New returns a Keypad whose decimal key shows decimal.
func New(decimal string) Keypad {
	if decimal == "" {
		decimal = calculator.DefaultFormatter.Decimal
	}
	return Keypad{CellWidth: 5, Decimal: decimal}
}

// Width returns the rendered width of a row.
func (k Keypad) Width() int {
	return Columns * (k.CellWidth + 2)
}

// Render draws the grid. The key whose label equals pressed is highlighted.
func (k Keypad) Render(pressed string) string {
	rows := make([]string, 0, len(Layout))
	for _, row := range Layout {
		cells := make([]string, 0, len(row))
		for _, key := range row {
			cells = append(cells, k.renderKey(key, pressed))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (k Keypad) renderKey(key Key, pressed string) string {
	span := key.span()
	// A spanning key also covers the borders of the keys it replaces.
	width := span*k.CellWidth + (span-1)*2

	label := key.Action.Label()
	style := styleFor(key.Action)
	if pressed != "" && label == pressed {
		style = styles.PressedKey
	}
	if key.Action.Kind == keymap.KindSymbol && key.Action.Symbol == '.' {
		label = k.Decimal
	}

	return style.Width(width).Render(label)
}

func styleFor(a keymap.Action) lipgloss.Style {
	switch a.Kind {
	case keymap.KindOperator:
		return styles.OperatorKey
	case keymap.KindClear:
		return styles.ClearKey
	case keymap.KindDelete:
		return styles.DeleteKey
	case keymap.KindEquals:
		return styles.EqualsKey
	default:
		return styles.DigitKey
	}
}

// Labels returns the key labels row by row, as Render prints them.
func (k Keypad) Labels() [][]string {
	out := make([][]string, 0, len(Layout))
	for _, row := range Layout {
		labels := make([]string, 0, len(row))
		for _, key := range row {
			label := key.Action.Label()
			if key.Action.Kind == keymap.KindSymbol && key.Action.Symbol == '.' {
				label = k.Decimal
			}
			labels = append(labels, label)
		}
		out = append(out, labels)
	}
	return out
}

// Legend returns a one-line listing of all labels, used when the terminal is
// too narrow for the grid.
func (k Keypad) Legend() string {
	var parts []string
	for _, row := range k.Labels() {
		parts = append(parts, strings.Join(row, " "))
	}
	return strings.Join(parts, " │ ")
}
