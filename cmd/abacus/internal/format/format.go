package format

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-runewidth"
)

// IsDarkBG is set once before bubbletea starts so that glamour never issues
// its own terminal background query while the program is running.
var IsDarkBG bool

var (
	mdRenderer      *glamour.TermRenderer
	mdRendererMu    sync.Mutex
	mdRendererWidth int
)

// InitMarkdownRenderer initializes the glamour renderer at the given width.
func InitMarkdownRenderer(width int) {
	if width <= 0 {
		width = 80
	}
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if width == mdRendererWidth && mdRenderer != nil {
		return
	}
	style := glamourstyles.LightStyleConfig
	if IsDarkBG {
		style = glamourstyles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	mdRenderer = r
	mdRendererWidth = width
}

// RenderMarkdown converts markdown text to terminal-formatted output. Without
// an initialized renderer the text is returned unchanged.
func RenderMarkdown(text string) string {
	mdRendererMu.Lock()
	r := mdRenderer
	mdRendererMu.Unlock()

	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// HelpMarkdown documents the terminal keys.
const HelpMarkdown = `# abacus

| Key | Action |
|---|---|
| ` + "`0`-`9`" + ` | enter a digit |
| ` + "`.` `,`" + ` | decimal point |
| ` + "`+` `-` `*` `/`" + ` | choose an operation |
| ` + "`=` `enter`" + ` | compute |
| ` + "`backspace` `delete`" + ` | delete the last digit |
| ` + "`c` `esc`" + ` | clear |
| ` + "`?`" + ` | toggle this help |
| ` + "`q` `ctrl+c`" + ` | quit |

Choosing an operation while another is pending computes the pending one
first, so ` + "`2 + 3 *`" + ` shows ` + "`5 ×`" + `. Results are rounded to
eight decimal places. Dividing by zero shows **Error** until the next key.
`

// Help renders HelpMarkdown.
func Help() string {
	return RenderMarkdown(HelpMarkdown)
}

// RightAlign pads s on the left to width display columns. A string wider than
// width keeps its rightmost columns behind a leading ellipsis, since the
// least significant digits are the ones being typed.
func RightAlign(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w <= width {
		return strings.Repeat(" ", width-w) + s
	}
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	kept := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if kept+rw > width-1 {
			break
		}
		kept += rw
		i--
	}

	return strings.Repeat(" ", width-1-kept) + "…" + string(runes[i:])
}
