package command

import (
	"strconv"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// BuildURL concatenates the command request URL the way the console always
// has: message, robot and token are appended as query values verbatim.
//
// Characters such as '&', '=', '#' and '%' are not escaped and will corrupt
// the request if present. Only bytes that cannot travel in a request line at
// all are percent-encoded, mirroring what a browser does to a raw URL string.
func BuildURL(sendURL, message, robot string, token float64) string {
	raw := sendURL + "?msg=" + message + "&botname=" + robot + "&sid=" + FormatToken(token)
	return wireEncode(raw)
}

// FormatToken renders a correlation token in shortest decimal form, e.g. "0.5".
func FormatToken(token float64) string {
	return strconv.FormatFloat(token, 'f', -1, 64)
}

// wireEncode percent-encodes control bytes, space, non-ASCII bytes and the
// characters browsers escape in a query (" ' < >). Everything else is kept.
func wireEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEncoding(c) {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEncoding(c byte) bool {
	switch {
	case c <= ' ', c >= 0x7f:
		return true
	case c == '"', c == '\'', c == '<', c == '>':
		return true
	}
	return false
}
