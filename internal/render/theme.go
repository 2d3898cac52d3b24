package render

import (
	"strconv"
	"strings"
)

// Theme is a terminal color palette.
type Theme struct {
	Name   string
	Front  string
	Back   string
	Accent string
	Muted  string
}

const reset = "\x1b[0m"

var (
	Light = Theme{Name: "light", Front: "\x1b[30m", Back: "\x1b[34m", Accent: "\x1b[38;5;208m", Muted: "\x1b[90m"}
	Dark  = Theme{Name: "dark", Front: "\x1b[97m", Back: "\x1b[96m", Accent: "\x1b[93m", Muted: "\x1b[37m"}
	Plain = Theme{Name: "plain"}
)

// ThemeFor returns Dark or Light.
func ThemeFor(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// UseDark combines the stored user preference with the terminal's own
// preference: either one asking for dark wins.
func UseDark(userPrefersDark bool, getenv func(string) string) bool {
	return userPrefersDark || TerminalPrefersDark(getenv)
}

// TerminalPrefersDark inspects COLORFGBG ("fg;bg" or "fg;other;bg"), which many
// terminals export. Background colors 0-6 and 8 are dark.
func TerminalPrefersDark(getenv func(string) string) bool {
	v := getenv("COLORFGBG")
	if v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}

func (t Theme) paint(color, s string) string {
	if color == "" || s == "" {
		return s
	}
	return color + s + reset
}
