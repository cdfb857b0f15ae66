package cache

import "strings"

var keyEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// Key joins prefix and parts with ':' into a deterministic cache key.
// Parts are escaped so that a ':' inside a part can never shift the
// boundaries between parts; distinct part lists always yield distinct keys.
func Key(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(keyEscaper.Replace(p))
	}
	return b.String()
}
