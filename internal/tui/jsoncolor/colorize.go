// Package jsoncolor renders indented JSON with theme-aware syntax coloring.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/styles"
)

// Colorize pretty-prints data and colors keys and scalar values. Invalid
// JSON is returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = colorizeLine(line)
	}
	return strings.Join(lines, "\n")
}

// colorizeLine colors one line of json.Indent output, which is always an
// optional `"key": ` prefix followed by a value or a bracket.
func colorizeLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	var key string
	if strings.HasPrefix(trimmed, `"`) {
		if k, rest, ok := cutKey(trimmed); ok {
			key = styles.TextPrimaryStyle.Render(k) + styles.TextMutedStyle.Render(":") + " "
			trimmed = rest
		}
	}

	value, comma := strings.CutSuffix(trimmed, ",")
	out := indent + key + valueStyle(value).Render(value)
	if comma {
		out += styles.TextMutedStyle.Render(",")
	}
	return out
}

// cutKey splits `"key": rest` into the quoted key and rest.
func cutKey(s string) (string, string, bool) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			rest, ok := strings.CutPrefix(s[i+1:], ": ")
			if !ok {
				return "", "", false
			}
			return s[:i+1], rest, true
		}
	}
	return "", "", false
}

func valueStyle(v string) lipgloss.Style {
	switch {
	case v == "":
		return lipgloss.NewStyle()
	case v == "null":
		return styles.TextErrorStyle
	case v == "true" || v == "false":
		return styles.CodeStyle
	case v[0] == '"':
		return styles.TextSuccessStyle
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		return styles.TextWarningStyle
	default:
		return lipgloss.NewStyle()
	}
}
