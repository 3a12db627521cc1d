package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// generateSelfSignedCert creates a self-signed certificate and key at the
// given paths. It is used for quick local TLS.
func generateSelfSignedCert(certFile, keyFile string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}

	hostname, _ := os.Hostname()

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Demo App"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost", hostname},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
	}

	derCert, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	if err := writePEM(certFile, 0644, &pem.Block{Type: "CERTIFICATE", Bytes: derCert}); err != nil {
		return err
	}
	keyBytes := x509.MarshalPKCS1PrivateKey(privateKey)
	return writePEM(keyFile, 0600, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: keyBytes})
}

func writePEM(path string, perm os.FileMode, block *pem.Block) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := pem.Encode(out, block); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return out.Close()
}

// startServer serves with TLS when enabled, generating a certificate if the
// configured one is missing. http.ErrServerClosed is not reported.
func (a *app) startServer(server *http.Server) error {
	var err error
	if a.config.EnableTLS {
		if _, statErr := os.Stat(a.config.CertFile); errors.Is(statErr, os.ErrNotExist) {
			a.logger.Info("certificate file not found, generating a self-signed certificate",
				zap.String("cert_file", a.config.CertFile))
			if err := generateSelfSignedCert(a.config.CertFile, a.config.KeyFile); err != nil {
				return err
			}
		}
		a.logger.Info("starting HTTPS server",
			zap.String("addr", server.Addr),
			zap.String("cert_file", a.config.CertFile))
		err = server.ListenAndServeTLS(a.config.CertFile, a.config.KeyFile)
	} else {
		a.logger.Info("starting HTTP server (with H2C support)", zap.String("addr", server.Addr))
		err = server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
