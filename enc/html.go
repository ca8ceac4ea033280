package enc

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// HTMLOption configures an HTMLEscaper
type HTMLOption func(*HTMLEscaper)

// WithNonASCII makes the escaper replace every non-ASCII character with a numeric character reference
func WithNonASCII() HTMLOption {
	return func(h *HTMLEscaper) {
		h.nonASCII = true
	}
}

// HTMLEscaper converts text to and from HTML entities. Unlike the encoders it works on text only.
type HTMLEscaper struct {
	nonASCII bool
}

func NewHTMLEscaper(opts ...HTMLOption) *HTMLEscaper {
	h := &HTMLEscaper{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EscapeString escapes `<`, `>`, `&`, `'`, `"` and carriage returns. If configured with WithNonASCII, all
// characters above 127 are written as `&#NNN;`.
func (h *HTMLEscaper) EscapeString(s string) string {
	escaped := html.EscapeString(s)
	if !h.nonASCII {
		return escaped
	}

	var sb strings.Builder
	sb.Grow(len(escaped))
	for _, r := range escaped {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString("&#")
		sb.WriteString(strconv.Itoa(int(r)))
		sb.WriteByte(';')
	}
	return sb.String()
}

// UnescapeString resolves named (`&amp;`) and numeric (`&#39;`, `&#x27;`) character references.
func (h *HTMLEscaper) UnescapeString(s string) string {
	return html.UnescapeString(s)
}
