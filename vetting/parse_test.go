package vetting

import (
	"reflect"
	"testing"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		host        string
		domain      string
		subdomains  []string
		label       string
		suffix      string
		registrable string
		isIP        bool
	}{
		{"plain", "https://example.com", "example.com", "example.com", nil, "example", "com", "example.com", false},
		{"www_stripped", "https://www.example.com/path", "www.example.com", "example.com", []string{"www"}, "example", "com", "example.com", false},
		{"no_scheme", "www.example.org", "www.example.org", "example.org", []string{"www"}, "example", "org", "example.org", false},
		{"multi_label_suffix", "http://login.paypal.co.uk/", "login.paypal.co.uk", "login.paypal.co.uk", []string{"login"}, "paypal", "co.uk", "paypal.co.uk", false},
		{"deep", "http://a.b.c.example.com", "a.b.c.example.com", "a.b.c.example.com", []string{"a", "b", "c"}, "example", "com", "example.com", false},
		{"upper_case_and_port", "HTTPS://WWW.Example.COM:8443/", "www.example.com", "example.com", []string{"www"}, "example", "com", "example.com", false},
		{"ipv4", "http://192.168.1.1/login", "192.168.1.1", "192.168.1.1", nil, "", "", "192.168.1.1", true},
		{"userinfo", "http://user@example.com", "example.com", "example.com", nil, "example", "com", "example.com", false},
		{"bad_escape_path", "http://192.168.1.1/login%", "192.168.1.1", "192.168.1.1", nil, "", "", "192.168.1.1", true},
		{"bad_escape_fragment", "http://secure-paypal.com/#%", "secure-paypal.com", "secure-paypal.com", nil, "secure-paypal", "com", "secure-paypal.com", false},
		{"bad_escape_userinfo_port", "http://u:p@Mail.Login.Example.com:8080/%zz?a=b", "mail.login.example.com", "mail.login.example.com", []string{"mail", "login"}, "example", "com", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseURL(tt.raw)
			if err != nil {
				t.Fatalf("ParseURL(%q): %v", tt.raw, err)
			}
			if d.Host != tt.host || d.Domain != tt.domain {
				t.Errorf("host/domain: got %q/%q, want %q/%q", d.Host, d.Domain, tt.host, tt.domain)
			}
			if !reflect.DeepEqual(d.Subdomains, tt.subdomains) {
				t.Errorf("subdomains: got %v, want %v", d.Subdomains, tt.subdomains)
			}
			if d.Name != tt.label || d.Suffix != tt.suffix {
				t.Errorf("name/suffix: got %q/%q, want %q/%q", d.Name, d.Suffix, tt.label, tt.suffix)
			}
			if got := d.Registrable(); got != tt.registrable {
				t.Errorf("registrable: got %q, want %q", got, tt.registrable)
			}
			if d.IsIP != tt.isIP {
				t.Errorf("is_ip: got %v, want %v", d.IsIP, tt.isIP)
			}
		})
	}
}

func TestParseURLBadEscapeKeepsPath(t *testing.T) {
	tests := []struct {
		raw  string
		path string
	}{
		{"http://192.168.1.1/login%", "/login%"},
		{"http://example.com/a/%zz?next=%", "/a/%zz"},
		{"http://example.com?q=%", ""},
		{"http://[2001:db8::1]:8443/verify%", "/verify%"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := ParseURL(tt.raw)
			if err != nil {
				t.Fatalf("ParseURL(%q): %v", tt.raw, err)
			}
			if !d.HasHost() {
				t.Fatal("host lost")
			}
			if d.Path != tt.path {
				t.Errorf("path: got %q, want %q", d.Path, tt.path)
			}
		})
	}
}

func TestParseURLDegrades(t *testing.T) {
	for _, raw := range []string{"", "   ", "http://", "http://not a host", "http://[::1", "http://not a host/%", "http://[zz]/%"} {
		t.Run(raw, func(t *testing.T) {
			d, err := ParseURL(raw)
			if err == nil {
				t.Fatalf("expected error for %q", raw)
			}
			if d.HasHost() {
				t.Errorf("expected no host, got %q", d.Host)
			}
		})
	}
}
