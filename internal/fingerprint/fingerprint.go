package fingerprint

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Voucher returns the SHA256 -> Base64 fingerprint of a raw voucher.
// Logs carry this value instead of the voucher itself.
func Voucher(voucher string) string {
	hash := sha256.Sum256([]byte(voucher))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Key returns the colon separated SHA256 fingerprint of the DER encoding of a public key,
// or "(n/a)" if the key cannot be encoded.
func Key(key *ecdsa.PublicKey) string {
	if key == nil {
		return "(n/a)"
	}
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "(n/a)"
	}
	hash := sha256.Sum256(der)
	enc := hex.EncodeToString(hash[:])

	var b strings.Builder
	for i := 0; i < len(enc); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(enc[i : i+2])
	}
	return b.String()
}
