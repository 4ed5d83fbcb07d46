// server/src/tls.go
package main

import (
	"crypto/tls"

	"golang.org/x/crypto/acme/autocert"
)

// setupTLS configures autocert-managed certificates for the allowed hosts.
// Certificates are cached on disk so restarts do not re-issue.
func setupTLS(hosts []string) *tls.Config {
	manager := &autocert.Manager{
		Cache:      autocert.DirCache("certs"),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(hosts...),
	}

	return &tls.Config{
		GetCertificate:   manager.GetCertificate,
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256},
	}
}
