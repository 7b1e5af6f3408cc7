package cert

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// TLSCertFilename is the filename the server certificate is stored
	// under in the data directory.
	TLSCertFilename = "tls-cert.pem"

	// TLSKeyFilename is the filename the server key is stored under in
	// the data directory.
	TLSKeyFilename = "tls-key.pem"

	// DefaultAutogenValidity is how long an auto-generated certificate
	// is valid for.
	DefaultAutogenValidity = 14 * 30 * 24 * time.Hour
)

var (
	// End of ASN.1 time.
	endOfTime = time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC)

	// Max serial number.
	serialNumberLimit = new(big.Int).Lsh(big.NewInt(1), 128)
)

// GenError is returned when provisioning the server credentials fails. It
// tells generating the certificate apart from getting it onto disk.
type GenError struct {
	// IO is true when the failure happened reading or writing the
	// credential files rather than generating the certificate itself.
	IO bool

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *GenError) Error() string {
	if e.IO {
		return fmt.Sprintf("unable to store tls credentials: %v",
			e.Err)
	}

	return fmt.Sprintf("unable to generate tls credentials: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *GenError) Unwrap() error {
	return e.Err
}

// ParseTLSIPs parses a comma separated list of IP addresses to include in
// the server certificate. Every entry must parse as an IP, so the result
// always carries one address per entry, in input order. An empty input
// yields no addresses.
func ParseTLSIPs(raw string) ([]net.IP, error) {
	if raw == "" {
		return nil, nil
	}

	entries := strings.Split(raw, ",")
	ips := make([]net.IP, 0, len(entries))
	for _, s := range entries {
		ip := net.ParseIP(strings.TrimSpace(s))
		if ip == nil {
			return nil, fmt.Errorf("invalid tls ip: %q", s)
		}

		ips = append(ips, ip)
	}

	return ips, nil
}

// GenCredentials ensures a certificate and key exist at the given paths,
// generating a fresh self-signed pair when they do not. An existing pair
// is left untouched, so restarting does not invalidate clients that have
// pinned the certificate. The certificate covers localhost plus the given
// IPs.
func GenCredentials(certPath, keyPath string, extraIPs []net.IP) error {
	certExists := fileExists(certPath)
	keyExists := fileExists(keyPath)

	if certExists && keyExists {
		return nil
	}

	// Half a pair is useless, regenerate both.
	certBytes, keyBytes, err := genCertPair(
		"lndk autogenerated cert", extraIPs, DefaultAutogenValidity,
	)
	if err != nil {
		return &GenError{Err: err}
	}

	if err := writeFileAtomic(certPath, certBytes, 0644); err != nil {
		return &GenError{IO: true, Err: err}
	}

	if err := writeFileAtomic(keyPath, keyBytes, 0600); err != nil {
		os.Remove(certPath)
		return &GenError{IO: true, Err: err}
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic writes data to a temporary file in the target's
// directory and renames it into place, so a crash never leaves a partial
// credential file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// genCertPair generates a self-signed key/cert pair and returns the pair
// in PEM form.
//
// The auto-generated certificates should *not* be used in production for
// public access as they're self-signed and don't necessarily contain all
// of the desired hostnames for the service. For production/public use,
// consider a real PKI.
func genCertPair(org string, ipAddresses []net.IP,
	certValidity time.Duration) ([]byte, []byte, error) {

	now := time.Now()
	validUntil := now.Add(certValidity)

	// Check that the certificate validity isn't past the ASN.1 end of
	// time.
	if validUntil.After(endOfTime) {
		validUntil = endOfTime
	}

	// Generate a serial number that's below the serialNumberLimit.
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial "+
			"number: %s", err)
	}

	// The certificate always covers the loopback names, plus whatever
	// IPs the caller wants to reach the server over.
	dnsNames := []string{"localhost"}
	ips := []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")}

	addIP := func(ipAddr net.IP) {
		for _, ip := range ips {
			if ip.Equal(ipAddr) {
				return
			}
		}
		ips = append(ips, ipAddr)
	}
	for _, ip := range ipAddresses {
		addIP(ip)
	}

	// Generate a private key for the certificate.
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{org},
			CommonName:   "localhost",
		},
		NotBefore: now.Add(-time.Hour * 24),
		NotAfter:  validUntil,

		KeyUsage: x509.KeyUsageKeyEncipherment |
			x509.KeyUsageDigitalSignature |
			x509.KeyUsageCertSign,
		ExtKeyUsage: []x509.ExtKeyUsage{
			x509.ExtKeyUsageServerAuth,
		},
		IsCA:                  true, // so can sign self.
		BasicConstraintsValid: true,

		DNSNames:    dnsNames,
		IPAddresses: ips,
	}

	derBytes, err := x509.CreateCertificate(
		rand.Reader, &template,
		&template, &priv.PublicKey, priv,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create certificate: %w",
			err)
	}

	certBuf := &bytes.Buffer{}
	err = pem.Encode(
		certBuf, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode certificate: %w",
			err)
	}

	keyBytes, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to encode privkey: %w",
			err)
	}
	keyBuf := &bytes.Buffer{}
	err = pem.Encode(
		keyBuf, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode private key: %w",
			err)
	}

	return certBuf.Bytes(), keyBuf.Bytes(), nil
}
