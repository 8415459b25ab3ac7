package boxify

import "fmt"

const (
	ESC = ""

	// ResetColors restores the terminal's default foreground and
	// background colors.
	ResetColors = ESC + "[39m" + ESC + "[49m"
)

// foregroundRGB formats a 24-bit ANSI foreground color escape sequence
// for the given color.
func foregroundRGB(c Color) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// backgroundRGB formats a 24-bit ANSI background color escape sequence
// for the given color.
func backgroundRGB(c Color) string {
	return fmt.Sprintf("%s[48;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// sgr formats a single-parameter ANSI SGR escape sequence, used for the
// 16-color codes 30-37/90-97 (foreground) and 40-47/100-107 (background).
func sgr(code int) string {
	return fmt.Sprintf("%s[%dm", ESC, code)
}
