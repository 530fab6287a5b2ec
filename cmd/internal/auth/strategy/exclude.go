package strategy

import "strings"

// wildcard marks an exclusion entry as a prefix rule. Everything before the
// marker must match the start of the normalized request path.
const wildcard = "*"

// RequiresAuth reports whether path must be authenticated given the
// configured exclusion list.
//
// Rules, in order:
//   - Empty path or empty list: authentication is required (fail closed).
//   - Paths and exact entries are compared after trailing-slash
//     normalization, so "/api/x" and "/api/x/" are the same path.
//   - An entry ending in "*" matches any path starting with the prefix
//     before the marker.
//   - Entries are evaluated in configured order; the first match wins.
func RequiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	p := ensureSlash(path)
	for _, entry := range excluded {
		if entry == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(entry, wildcard); ok {
			if strings.HasPrefix(p, prefix) {
				return false
			}
			continue
		}
		if p == ensureSlash(entry) {
			return false
		}
	}
	return true
}

func ensureSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
