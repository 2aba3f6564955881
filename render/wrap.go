package render

import "strings"

// Wrap breaks s into lines no wider than maxWidth at the given size. Words
// longer than maxWidth get a line of their own.
func Wrap(m Measurer, s string, size, maxWidth float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if m == nil || maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.MeasureText(candidate, size) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
