package vetting

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// DefaultTLSTimeout bounds the TCP connect and handshake of a probe.
const DefaultTLSTimeout = 5 * time.Second

// TLSResult is the outcome of one certificate probe.
type TLSResult struct {
	Presented bool
	NotAfter  time.Time // leaf certificate expiry when Presented
	Err       error     // why no certificate was obtained
}

// CertificateProbe checks whether a host serves a certificate over HTTPS.
// Implementations never fail; every error collapses to Presented == false.
type CertificateProbe interface {
	Probe(ctx context.Context, host string) TLSResult
}

// TLSProbe performs a verified TLS handshake against host:443.
type TLSProbe struct {
	Timeout time.Duration
	Port    string
	RootCAs *x509.CertPool // nil uses the system pool
	log     *zap.SugaredLogger
}

// NewTLSProbe returns a probe on the standard HTTPS port.
func NewTLSProbe(timeout time.Duration, log *zap.SugaredLogger) *TLSProbe {
	if timeout <= 0 {
		timeout = DefaultTLSTimeout
	}
	return &TLSProbe{Timeout: timeout, Port: "443", log: log}
}

// Probe dials the host and reports whether a peer certificate was obtained.
func (p *TLSProbe) Probe(ctx context.Context, host string) TLSResult {
	if host == "" {
		return TLSResult{Err: errors.New("empty host")}
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	d := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.Timeout},
		Config:    &tls.Config{ServerName: host, RootCAs: p.RootCAs},
	}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, p.Port))
	if err != nil {
		p.log.Infof("[TLS] No certificate for %s: %v", host, err)
		return TLSResult{Err: fmt.Errorf("tls handshake %s: %w", host, err)}
	}
	defer conn.Close()

	certs := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return TLSResult{Err: fmt.Errorf("tls handshake %s: no peer certificate", host)}
	}

	p.log.Debugf("[TLS] %s presents certificate valid until %s", host, certs[0].NotAfter.Format(time.RFC3339))
	return TLSResult{Presented: true, NotAfter: certs[0].NotAfter}
}
