package vetting

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ParsedDomain is the host breakdown of one URL.
type ParsedDomain struct {
	Host       string   `json:"host"`                 // lowercase hostname, no port
	Domain     string   `json:"domain"`               // Host without a leading "www."
	Path       string   `json:"path,omitempty"`       // URL path as written
	Subdomains []string `json:"subdomains,omitempty"` // labels left of the registrable domain
	Name       string   `json:"name,omitempty"`       // registrable label ("example")
	Suffix     string   `json:"suffix,omitempty"`     // public suffix ("co.uk")
	IsIP       bool     `json:"is_ip"`
}

// Registrable returns the registrable domain ("example.co.uk"), or the IP
// itself for IP literal hosts.
func (d ParsedDomain) Registrable() string {
	if d.IsIP {
		return d.Host
	}
	if d.Name == "" {
		return ""
	}
	if d.Suffix == "" {
		return d.Name
	}
	return d.Name + "." + d.Suffix
}

// HasHost reports whether a hostname could be extracted at all.
func (d ParsedDomain) HasHost() bool {
	return d.Host != ""
}

// ParseURL breaks a raw URL into its host components. Strings without a
// scheme ("www.example.com/a") are read as http URLs. A malformed path,
// query or fragment does not hide the host: the authority is then read
// directly from the text. On error the returned ParsedDomain is empty but
// usable.
func ParseURL(raw string) (ParsedDomain, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedDomain{}, fmt.Errorf("empty url")
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	hostname, path, err := splitURL(s)
	if err != nil {
		return ParsedDomain{}, fmt.Errorf("parse url %q: %w", raw, err)
	}

	host := strings.TrimSuffix(strings.ToLower(hostname), ".")
	d := ParsedDomain{
		Host:   host,
		Domain: strings.TrimPrefix(host, "www."),
		Path:   path,
	}
	if host == "" {
		return d, fmt.Errorf("no host in url %q", raw)
	}

	if net.ParseIP(host) != nil {
		d.IsIP = true
		return d, nil
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	d.Suffix = suffix
	if suffix == host {
		// The whole host is a public suffix ("co.uk"); nothing registrable.
		return d, nil
	}

	labels := strings.Split(strings.TrimSuffix(host, "."+suffix), ".")
	d.Name = labels[len(labels)-1]
	if len(labels) > 1 {
		d.Subdomains = labels[:len(labels)-1]
	}
	return d, nil
}

// splitURL returns the hostname and path of s. When net/url rejects s (bad
// percent escapes, stray characters after the host) the authority is taken
// as written between "://" and the first '/', '?' or '#'.
func splitURL(s string) (host, path string, err error) {
	u, err := url.Parse(s)
	if err == nil {
		return u.Hostname(), u.Path, nil
	}
	host, path, ok := readAuthority(s)
	if !ok {
		return "", "", err
	}
	return host, path, nil
}

var hostnameChars = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func readAuthority(s string) (host, path string, ok bool) {
	i := strings.Index(s, "://")
	if i < 0 {
		return "", "", false
	}
	authority := s[i+3:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		path = authority[end:]
		authority = authority[:end]
		if q := strings.IndexAny(path, "?#"); q >= 0 {
			path = path[:q]
		}
	}
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		authority = authority[at+1:]
	}

	// [v6]:port
	if strings.HasPrefix(authority, "[") {
		end := strings.Index(authority, "]")
		if end < 0 || net.ParseIP(authority[1:end]) == nil {
			return "", "", false
		}
		return authority[1:end], path, true
	}

	host = authority
	if c := strings.LastIndex(host, ":"); c >= 0 {
		host = host[:c]
	}
	if !hostnameChars.MatchString(host) {
		return "", "", false
	}
	return host, path, true
}
