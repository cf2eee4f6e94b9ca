package vetting

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

var urlPattern = regexp.MustCompile("(?i)\\b(?:https?://|www\\.)[^\\s<>\"'`]+")

// ExtractURLs returns the URL-like tokens of a free-text message in the
// order they appear: "http://", "https://" or "www." followed by a dotted
// host. Trailing punctuation is dropped. At most limit tokens are returned
// when limit > 0.
func ExtractURLs(text string, limit int) []string {
	var out []string
	for _, tok := range urlPattern.FindAllString(text, -1) {
		tok = strings.TrimRight(tok, ".,;:!?)]}")
		d, err := ParseURL(tok)
		if err != nil || !strings.Contains(d.Host, ".") {
			continue
		}
		out = append(out, tok)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// AssessAll scores every URL concurrently. Results keep the input order.
func (a *Assessor) AssessAll(ctx context.Context, urls []string) []Assessment {
	out := make([]Assessment, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			out[i] = a.Assess(ctx, u)
			return nil
		})
	}

	// Assess never fails, so Wait only synchronises.
	_ = g.Wait()
	return out
}
