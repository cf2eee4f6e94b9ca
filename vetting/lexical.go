package vetting

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Signal is one triggered rule.
type Signal struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Reason string `json:"reason"`
}

var ipv4Literal = regexp.MustCompile(`^(?:\d{1,3}\.){3}\d{1,3}$`)

// LexicalSignals evaluates the structural rules against the raw URL and its
// parsed host. It performs no I/O and accepts any input.
func LexicalSignals(p Policy, raw string, d ParsedDomain) []Signal {
	var out []Signal
	w := p.Weights

	// URL length, in characters
	if utf8.RuneCountInString(raw) > p.LongURLLength {
		out = append(out, Signal{"long_url", w.LongURL, "URL is too long"})
	}

	// Special characters
	if strings.Contains(raw, "@") {
		out = append(out, Signal{"at_symbol", w.AtSymbol, "URL contains '@' symbol"})
	}
	if strings.Contains(d.Domain, "-") {
		out = append(out, Signal{"hyphenated_host", w.HyphenatedHost, "Domain contains hyphen ('-')"})
	}
	if strings.Contains(raw, "_") {
		out = append(out, Signal{"underscore", w.Underscore, "URL contains underscore ('_')"})
	}

	// Subdomain depth
	if len(d.Subdomains) > p.MaxSubdomains {
		out = append(out, Signal{"deep_subdomains", w.DeepSubdomains, "Too many subdomains"})
	}

	// IP address instead of a name
	if ipv4Literal.MatchString(d.Domain) {
		out = append(out, Signal{"ip_literal", w.IPLiteral, "Uses an IP address instead of a domain name"})
	}

	// Suspicious keywords, one signal per keyword found
	target := keywordTarget(p.KeywordScope, d)
	if target == "" {
		return out
	}
	for _, kw := range p.keywords {
		if strings.Contains(target, kw) {
			out = append(out, Signal{
				Name:   "keyword:" + kw,
				Weight: w.Keyword,
				Reason: fmt.Sprintf("Suspicious keyword found in domain: '%s'", kw),
			})
		}
	}
	return out
}

func keywordTarget(scope KeywordScope, d ParsedDomain) string {
	switch scope {
	case KeywordScopeRegistrable:
		if d.IsIP {
			return ""
		}
		return d.Name
	case KeywordScopeHost:
		return d.Domain
	default:
		return d.Domain + strings.ToLower(d.Path)
	}
}
