package pagemeta

import (
	"regexp"
	"strings"
)

// wwwLabel matches a leading "www", "www1", "www2", ... label.
var wwwLabel = regexp.MustCompile(`(?i)^www[0-9]*$`)

// secondLevelLabels are labels that, when second to last, form part of a
// two-label public suffix such as co.uk or com.au.
var secondLevelLabels = map[string]bool{
	"ac":  true,
	"co":  true,
	"com": true,
	"edu": true,
	"gov": true,
	"net": true,
	"org": true,
}

// GetProvider derives a human-readable provider name from a hostname by
// dropping a leading www label and the top-level domain, then joining the
// remaining labels with spaces. For example "things.example.co.uk" becomes
// "things example".
//
// A hostname without dots is returned unchanged. A hostname consisting only
// of a public suffix, such as "co.uk", yields "".
func GetProvider(hostname string) string {
	hostname = strings.TrimSuffix(hostname, ".")
	if !strings.Contains(hostname, ".") {
		return hostname
	}

	labels := strings.Split(hostname, ".")
	if wwwLabel.MatchString(labels[0]) {
		labels = labels[1:]
	}

	suffix := 1
	if n := len(labels); n >= 2 && secondLevelLabels[strings.ToLower(labels[n-2])] {
		if n < 3 {
			return ""
		}
		suffix = 2
	}

	return strings.Join(labels[:len(labels)-suffix], " ")
}
