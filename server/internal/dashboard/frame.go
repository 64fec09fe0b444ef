package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/onelinechat/onelinechat/server/internal/board"
)

const (
	clearScreen = "\033[H\033[2J"
	header      = "+  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  --|==1line==chat====>-  +\n"
	emptyRow    = "+                                 NO CLIENTS                                  +\n"
	footer      = "+  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  -  +\n"

	colorBright = "\033[1;32m"
	colorNormal = "\033[32m"
	colorReset  = "\033[0m"

	authorWidth  = 10
	messageWidth = 61
)

// Render writes one frame for snap to w.
// The frame is assembled in memory and written with a single Write call.
func Render(w io.Writer, snap map[string]board.Entry) error {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	sb.WriteString(header)

	if len(snap) == 0 {
		sb.WriteString(emptyRow)
	} else {
		authors := make([]string, 0, len(snap))
		for a := range snap {
			authors = append(authors, a)
		}
		sort.Strings(authors)
		for _, a := range authors {
			writeRow(&sb, a, snap[a])
		}
	}

	sb.WriteString(footer)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("dashboard: write frame: %w", err)
	}
	return nil
}

func writeRow(sb *strings.Builder, author string, e board.Entry) {
	fmt.Fprintf(sb, "+ [%-*s]: ", authorWidth, truncate(sanitize(author), authorWidth))

	indent, color := style(e.Age)
	budget := messageWidth - indent
	sb.WriteString(strings.Repeat(" ", indent))
	fmt.Fprintf(sb, "%s%-*s%s", color, budget, truncate(sanitize(e.Text), budget), colorReset)

	sb.WriteString(" |\n")
}

// Shade names how an entry of the given age is drawn: "new", "settling",
// "bright", "normal" or "faded".
func Shade(age int) string {
	switch {
	case age < 1:
		return "new"
	case age < 2:
		return "settling"
	case age < 12:
		return "bright"
	case age < 24:
		return "normal"
	default:
		return "faded"
	}
}

// style returns the leading indent and the color sequence for an entry age.
func style(age int) (indent int, color string) {
	switch {
	case age < 1:
		return 8, ""
	case age < 2:
		return 2, ""
	case age < 12:
		return 0, colorBright
	case age < 24:
		return 0, colorNormal
	default:
		return 0, ""
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
