package docgen

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	// Brand is the first line of every exported page
	Brand = "LegalBridge India"

	// DisclaimerLine and FooterLine close every exported page
	DisclaimerLine = "Disclaimer: This document is generated by AI and should be reviewed by a legal professional."
	FooterLine     = "Generated by LegalBridge India - Free AI-Powered Legal Aid Platform"

	pageBreak = "\f"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// PageLayout sets the size of an exported page in display columns and lines
type PageLayout struct {
	Width int
	Lines int
}

// DefaultLayout fits a plain A4 page at a monospaced 12pt font
var DefaultLayout = PageLayout{Width: 90, Lines: 60}

// header and footer lines of a page, blank separators included
const headerLines, footerLines = 4, 3

// Export renders a document body into pages. Each page opens with the brand,
// the upper cased template title and the generation date, and closes with the
// disclaimer footer. Pages are separated by a form feed.
func Export(templateTitle, body string, generated time.Time, layout PageLayout) string {
	if layout.Width <= 0 {
		layout.Width = DefaultLayout.Width
	}
	perPage := layout.Lines - headerLines - footerLines
	if perPage < 1 {
		perPage = 1
	}

	header := []string{
		Brand,
		strings.ToUpper(templateTitle),
		fmt.Sprintf("Generated on: %d/%d/%d", generated.Day(), int(generated.Month()), generated.Year()),
		"",
	}
	footer := []string{"", DisclaimerLine, FooterLine}

	lines := Wrap(body, layout.Width)
	if len(lines) == 0 {
		lines = []string{""}
	}

	var pages []string
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		page := make([]string, 0, headerLines+perPage+footerLines)
		page = append(page, header...)
		page = append(page, lines[start:end]...)
		page = append(page, footer...)
		pages = append(pages, strings.Join(page, "\n"))
	}
	return strings.Join(pages, "\n"+pageBreak)
}

// Filename is the download name of an exported template
func Filename(templateTitle string) string {
	if strings.TrimSpace(templateTitle) == "" {
		return "document.txt"
	}
	return whitespaceRun.ReplaceAllString(templateTitle, "_") + ".txt"
}

// Wrap breaks text into lines no wider than width display columns. Existing
// line breaks are kept, words longer than a line are split.
func Wrap(text string, width int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if runewidth.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	var (
		out     []string
		current strings.Builder
		used    int
	)
	flush := func() {
		out = append(out, current.String())
		current.Reset()
		used = 0
	}

	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)

		if used > 0 && used+1+w > width {
			flush()
		}
		if w > width {
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if used+rw > width {
					flush()
				}
				current.WriteRune(r)
				used += rw
			}
			continue
		}
		if used > 0 {
			current.WriteByte(' ')
			used++
		}
		current.WriteString(word)
		used += w
	}
	if used > 0 {
		flush()
	}
	return out
}
