package utils

import "strings"

// FormatSpaces escapes whitespace control characters so that malformed input lines can be printed on single line.
func FormatSpaces(s []byte) string {
	buf := strings.Builder{}
	for _, c := range s {
		switch c {
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\v':
			buf.WriteString(`\v`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// NormalizeHex cleans hex token typed by user or written by logging tools: `0x`/`0X` prefix, spaces, dots and
// underscores are removed. Result is not validated to be hex.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	buf := strings.Builder{}
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '_', '.', ':':
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}
