package vetting

import "time"

// KeywordScope selects which part of a URL the suspicious keyword rule reads.
type KeywordScope int

const (
	// KeywordScopeHostPath matches against the host (without a leading
	// "www.") followed by the URL path.
	KeywordScopeHostPath KeywordScope = iota
	// KeywordScopeHost matches against the host only.
	KeywordScopeHost
	// KeywordScopeRegistrable matches against the registrable label only
	// ("paypal" for "login.paypal.co.uk").
	KeywordScopeRegistrable
)

// SignalWeights defines the weight added to the score by each rule.
type SignalWeights struct {
	LongURL        int `json:"long_url"`        // Default: 1
	AtSymbol       int `json:"at_symbol"`       // Default: 2
	HyphenatedHost int `json:"hyphenated_host"` // Default: 1
	Underscore     int `json:"underscore"`      // Default: 1
	DeepSubdomains int `json:"deep_subdomains"` // Default: 2
	IPLiteral      int `json:"ip_literal"`      // Default: 3
	Keyword        int `json:"keyword"`         // Default: 2 (per keyword)
	NewDomain      int `json:"new_domain"`      // Default: 3
	LookupFailed   int `json:"lookup_failed"`   // Default: 2
	NoTLS          int `json:"no_tls"`          // Default: 2
}

// Policy is the complete weighting policy of the scorer.
// It is passed by value; the keyword slice is copied on the way in and out.
type Policy struct {
	Threshold       int           `json:"threshold"`
	Weights         SignalWeights `json:"weights"`
	LongURLLength   int           `json:"long_url_length"`
	MaxSubdomains   int           `json:"max_subdomains"`
	NewDomainMaxAge time.Duration `json:"new_domain_max_age"`
	KeywordScope    KeywordScope  `json:"keyword_scope"`
	keywords        []string
}

var defaultKeywords = []string{
	"login", "verify", "update", "secure", "account",
	"bank", "paypal", "security", "ebay",
}

// DefaultPolicy returns the reference weights, keywords and threshold.
func DefaultPolicy() Policy {
	return Policy{
		Threshold: 5,
		Weights: SignalWeights{
			LongURL:        1,
			AtSymbol:       2,
			HyphenatedHost: 1,
			Underscore:     1,
			DeepSubdomains: 2,
			IPLiteral:      3,
			Keyword:        2,
			NewDomain:      3,
			LookupFailed:   2,
			NoTLS:          2,
		},
		LongURLLength:   75,
		MaxSubdomains:   2,
		NewDomainMaxAge: 180 * 24 * time.Hour,
		KeywordScope:    KeywordScopeHostPath,
		keywords:        append([]string(nil), defaultKeywords...),
	}
}

// Keywords returns a copy of the suspicious keyword list, in evaluation order.
func (p Policy) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// WithKeywords returns a copy of the policy using the given keyword list.
func (p Policy) WithKeywords(keywords ...string) Policy {
	p.keywords = append([]string(nil), keywords...)
	return p
}

// IsPhishing reports whether a score reaches the threshold.
func (p Policy) IsPhishing(score int) bool {
	return score >= p.Threshold
}
