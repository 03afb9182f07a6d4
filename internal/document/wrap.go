package document

import "strings"

// measureFunc reports the rendered width of a string in page units. The
// layout passes gofpdf's string-width measurement; tests pass a fake.
type measureFunc func(string) float64

// wrapText greedily wraps text into lines no wider than maxWidth. Words are
// never split mid-word; a single word wider than maxWidth gets its own line
// and is allowed to overflow. Returns nil for blank text.
func wrapText(measure measureFunc, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// fitsInline reports whether tailWidth more units fit on a line that already
// holds line, within maxWidth. Used to decide whether the bold proposal
// total rides the last wrapped prefix line or drops to a fresh one; the
// total is never split across a wrap boundary.
func fitsInline(measure measureFunc, line string, tailWidth, maxWidth float64) bool {
	return measure(line+" ")+tailWidth <= maxWidth
}
