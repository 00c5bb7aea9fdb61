package proxy

import (
	"net/netip"
	"strings"
)

// Rule is a single no-proxy match predicate. Both arguments are already
// normalized (lowercase, scheme and port stripped).
type Rule struct {
	Name  string
	Match func(host, entry string) bool
}

// Rules is the ordered set of predicates consulted by Bypass.
var Rules = []Rule{
	{Name: "all", Match: MatchAll},
	{Name: "exact", Match: MatchExact},
	{Name: "subdomain", Match: MatchSubdomain},
	{Name: "wildcard", Match: MatchWildcard},
	{Name: "cidr", Match: MatchCIDR},
	{Name: "loopback", Match: MatchLoopbackAlias},
}

// MatchAll matches every host when the entry is "*".
func MatchAll(_, entry string) bool {
	return entry == "*"
}

// MatchExact matches the literal host.
func MatchExact(host, entry string) bool {
	return entry != "" && host == entry
}

// MatchSubdomain matches hosts below the entry. A leading dot on the entry
// also matches the bare domain.
func MatchSubdomain(host, entry string) bool {
	if entry == "" || entry == "." {
		return false
	}
	if strings.HasPrefix(entry, ".") {
		return strings.HasSuffix(host, entry) || host == entry[1:]
	}
	return strings.HasSuffix(host, "."+entry)
}

// MatchWildcard matches a leading "*" suffix pattern such as "*zyz.xx" or "*.corp".
func MatchWildcard(host, entry string) bool {
	if len(entry) < 2 || entry[0] != '*' {
		return false
	}
	return strings.HasSuffix(host, entry[1:])
}

// MatchCIDR matches IP hosts contained in a prefix such as "127.0.0.0/8".
func MatchCIDR(host, entry string) bool {
	if !strings.Contains(entry, "/") {
		return false
	}
	prefix, err := netip.ParsePrefix(entry)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return prefix.Contains(addr.Unmap())
}

// MatchLoopbackAlias matches the localhost and loopback-address spellings,
// so "::1" also covers "0:0:0:0:0:0:0:1" and "localhost" covers "localhost.".
func MatchLoopbackAlias(host, entry string) bool {
	if entry == "localhost" {
		return host == "localhost" || host == "localhost."
	}
	entryAddr, err := netip.ParseAddr(entry)
	if err != nil || !entryAddr.IsLoopback() {
		return false
	}
	hostAddr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return entryAddr.Unmap() == hostAddr.Unmap()
}

// Bypass reports whether host matches any entry of a no-proxy list.
func Bypass(host string, entries []string) bool {
	h := normalizeHost(host)
	if h == "" {
		return false
	}
	for _, raw := range entries {
		entry := normalizeEntry(raw)
		if entry == "" {
			continue
		}
		for _, rule := range Rules {
			if rule.Match(h, entry) {
				return true
			}
		}
	}
	return false
}

// SplitList splits a comma separated no-proxy value.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeHost(host string) string {
	return stripPort(strings.ToLower(strings.TrimSpace(host)))
}

func normalizeEntry(entry string) string {
	e := strings.ToLower(strings.TrimSpace(entry))
	if i := strings.Index(e, "://"); i >= 0 {
		e = e[i+3:]
		e = strings.TrimSuffix(e, "/")
	}
	return stripPort(e)
}

// stripPort removes a ":port" suffix while leaving bare IPv6 addresses and
// CIDR prefixes intact.
func stripPort(s string) string {
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			return s[1:end]
		}
		return s
	}
	if strings.Count(s, ":") == 1 {
		return s[:strings.Index(s, ":")]
	}
	return s
}
