// internal/ipn/params.go
package ipn

import (
	"net/url"
	"strings"
)

// Params is the decoded key/value body of an IPN callback.
// Keys keep the case they were received with and the order they were first seen in.
// A key sent more than once keeps its last value (same as standard form decoding).
type Params struct {
	keys   []string
	values map[string]string
}

func newParams() *Params {
	return &Params{values: make(map[string]string)}
}

// ParseParams decodes a URL-encoded body. It never fails: malformed escapes are kept
// as-is because PayPal (and anything replaying its callbacks) is not always strict.
// An empty body gives an empty Params.
func ParseParams(raw string) *Params {
	p := newParams()
	if raw == "" {
		return p
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		p.Set(unescape(key), unescape(value))
	}
	return p
}

// Get returns the value for key, or "" when absent.
func (p *Params) Get(key string) string {
	return p.values[key]
}

// Lookup is Get with a presence flag.
func (p *Params) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its original position.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the keys in first-seen order. The slice is a copy.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Map returns an unordered copy of the parameters.
func (p *Params) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Encode re-encodes the parameters as a form body, in key order.
func (p *Params) Encode() string {
	var sb strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.values[k]))
	}
	return sb.String()
}

// unescape is a lenient form decoder: '+' becomes a space, valid %XX sequences are
// decoded and invalid ones are copied through untouched.
func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			sb.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
