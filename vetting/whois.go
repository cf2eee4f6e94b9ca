package vetting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
	"go.uber.org/zap"
)

// RegistrationOutcome is the kind of answer a registration lookup produced.
type RegistrationOutcome int

const (
	// RegistrationFailed means the lookup itself failed: network error,
	// rate limiting, cancellation or a response the parser rejected.
	RegistrationFailed RegistrationOutcome = iota
	// RegistrationUndated means a record came back without a usable
	// creation date.
	RegistrationUndated
	// RegistrationFound means a record with a creation date came back.
	RegistrationFound
)

func (o RegistrationOutcome) String() string {
	switch o {
	case RegistrationFound:
		return "found"
	case RegistrationUndated:
		return "undated"
	default:
		return "failed"
	}
}

// ErrNoCreationDate is reported for records without a parseable creation date.
var ErrNoCreationDate = errors.New("no creation date in registration record")

var errNoDomainSection = errors.New("no domain section in whois record")

// RegistrationResult is the outcome of one registration lookup.
type RegistrationResult struct {
	Outcome   RegistrationOutcome
	CreatedAt time.Time
	Err       error
}

// RegistrationLookup fetches registration data for a domain. Implementations
// report failures inside the result and must honour ctx.
type RegistrationLookup interface {
	Lookup(ctx context.Context, domain string) RegistrationResult
}

// WhoisLookup queries WHOIS servers and parses the creation date. Callers
// pass the registrable domain; subdomains are not walked up.
type WhoisLookup struct {
	fetch func(domain string) (string, error)
	parse func(raw string) (parser.WhoisInfo, error)
	log   *zap.SugaredLogger
}

// NewWhoisLookup builds a lookup whose socket operations give up after
// timeout. Overall cancellation comes from the ctx passed to Lookup.
func NewWhoisLookup(timeout time.Duration, log *zap.SugaredLogger) *WhoisLookup {
	client := whois.NewClient().SetTimeout(timeout)
	return &WhoisLookup{
		fetch: func(domain string) (string, error) { return client.Whois(domain) },
		parse: parser.Parse,
		log:   log,
	}
}

// Lookup returns the registration result for domain.
func (l *WhoisLookup) Lookup(ctx context.Context, domain string) RegistrationResult {
	raw, err := l.query(ctx, domain)
	if err != nil {
		l.log.Infof("[WHOIS] Lookup failed for %s: %v", domain, err)
		return RegistrationResult{Outcome: RegistrationFailed, Err: err}
	}

	p, err := l.parse(raw)
	if err != nil || p.Domain == nil {
		if err == nil {
			err = errNoDomainSection
		}
		l.log.Infof("[WHOIS] Unparseable record for %s: %v", domain, err)
		return RegistrationResult{Outcome: RegistrationFailed, Err: fmt.Errorf("parse whois for %s: %w", domain, err)}
	}

	created, err := parseRegistrationDate(p.Domain.CreatedDate)
	if err != nil {
		l.log.Debugf("[WHOIS] No creation date for %s (%q)", domain, p.Domain.CreatedDate)
		return RegistrationResult{Outcome: RegistrationUndated, Err: err}
	}
	return RegistrationResult{Outcome: RegistrationFound, CreatedAt: created}
}

// query runs the blocking WHOIS call and abandons it when ctx ends.
func (l *WhoisLookup) query(ctx context.Context, domain string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type reply struct {
		raw string
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		raw, err := l.fetch(domain)
		ch <- reply{raw, err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("whois %s: %w", domain, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("whois %s: %w", domain, r.err)
		}
		return r.raw, nil
	}
}

var registrationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
}

func parseRegistrationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoCreationDate
	}
	for _, l := range registrationDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrNoCreationDate, s)
}
