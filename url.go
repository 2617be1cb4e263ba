package pagemeta

import "net/url"

// ResolveURL resolves ref against base. An absolute ref, or one that cannot
// be parsed, is returned unchanged.
func ResolveURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Hostname returns the host of rawURL without its port, or "" if rawURL
// cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
