package vetting

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Assessment is the scorer's verdict on one URL. It is built fresh per call
// and owned by the caller.
type Assessment struct {
	URL      string       `json:"url"`
	Domain   ParsedDomain `json:"domain"`
	Score    int          `json:"score"`
	Signals  []Signal     `json:"signals"`
	Reasons  []string     `json:"reasons"`
	Phishing bool         `json:"phishing"`
}

// Verdict returns the classification and the triggered reasons.
func (a Assessment) Verdict() (bool, []string) {
	return a.Phishing, a.Reasons
}

// Assessor runs the extractors and aggregates their signals.
type Assessor struct {
	policy        Policy
	registry      RegistrationLookup
	certs         CertificateProbe
	lookupTimeout time.Duration
	workers       int
	now           func() time.Time
	log           *zap.SugaredLogger
}

// Option customises an Assessor.
type Option func(*Assessor)

// WithLookupTimeout bounds each registration lookup. Zero leaves only the
// caller's context in charge.
func WithLookupTimeout(d time.Duration) Option {
	return func(a *Assessor) { a.lookupTimeout = d }
}

// WithWorkers sets how many URLs AssessAll scores concurrently.
func WithWorkers(n int) Option {
	return func(a *Assessor) { a.workers = n }
}

// WithClock replaces time.Now when computing domain age.
func WithClock(now func() time.Time) Option {
	return func(a *Assessor) { a.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Assessor) { a.log = log }
}

// NewAssessor builds an assessor around the given policy and probes.
func NewAssessor(policy Policy, registry RegistrationLookup, certs CertificateProbe, opts ...Option) *Assessor {
	a := &Assessor{
		policy:   policy,
		registry: registry,
		certs:    certs,
		workers:  4,
		now:      time.Now,
		log:      zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.workers <= 0 {
		a.workers = 1
	}
	return a
}

// Check is Assess reduced to (is phishing, reasons).
func (a *Assessor) Check(ctx context.Context, raw string) (bool, []string) {
	return a.Assess(ctx, raw).Verdict()
}

// Assess scores one URL: lexical rules, then domain age, then TLS.
// Probe failures become signals; nothing is returned as an error.
func (a *Assessor) Assess(ctx context.Context, raw string) Assessment {
	d, err := ParseURL(raw)
	if err != nil {
		a.log.Debugf("[ASSESS] Partial parse of %q: %v", raw, err)
	}

	signals := LexicalSignals(a.policy, raw, d)

	if d.HasHost() {
		if s, ok := a.domainAgeSignal(ctx, d); ok {
			signals = append(signals, s)
		}
		if s, ok := a.tlsSignal(ctx, d); ok {
			signals = append(signals, s)
		}
	}

	res := Assessment{
		URL:     raw,
		Domain:  d,
		Signals: signals,
		Reasons: make([]string, 0, len(signals)),
	}
	for _, s := range signals {
		res.Score += s.Weight
		res.Reasons = append(res.Reasons, s.Reason)
	}
	res.Phishing = a.policy.IsPhishing(res.Score)

	a.log.Infof("[ASSESS] %s score=%d phishing=%t signals=%d", raw, res.Score, res.Phishing, len(signals))
	return res
}

func (a *Assessor) domainAgeSignal(ctx context.Context, d ParsedDomain) (Signal, bool) {
	if a.registry == nil {
		return Signal{}, false
	}

	target := d.Registrable()
	if target == "" {
		target = d.Domain
	}

	if a.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
	}

	r := a.registry.Lookup(ctx, target)
	switch r.Outcome {
	case RegistrationFound:
		if a.now().Sub(r.CreatedAt) < a.policy.NewDomainMaxAge {
			return Signal{"new_domain", a.policy.Weights.NewDomain, "Domain is newly registered (< 6 months)"}, true
		}
	case RegistrationFailed:
		return Signal{"whois_failed", a.policy.Weights.LookupFailed, "WHOIS lookup failed"}, true
	}
	return Signal{}, false
}

func (a *Assessor) tlsSignal(ctx context.Context, d ParsedDomain) (Signal, bool) {
	if a.certs == nil {
		return Signal{}, false
	}
	if r := a.certs.Probe(ctx, d.Domain); !r.Presented {
		return Signal{"no_tls", a.policy.Weights.NoTLS, "No SSL Certificate (HTTP instead of HTTPS)"}, true
	}
	return Signal{}, false
}
