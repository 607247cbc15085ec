package ui

import "strings"

// truncate shortens value to limit runes, adding an ellipsis when cut.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of value, favouring the end so file names
// stay readable.
func truncateMiddle(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 5 {
		return string(runes[:limit])
	}
	endLen := (limit - 3) * 2 / 3
	startLen := limit - 3 - endLen
	return string(runes[:startLen]) + "..." + string(runes[len(runes)-endLen:])
}

// clipLines limits text to at most height lines of width runes each.
func clipLines(text string, width, height int) []string {
	lines := strings.Split(text, "\n")
	if height >= 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = truncate(strings.ReplaceAll(line, "\t", "    "), width)
	}
	return lines
}
