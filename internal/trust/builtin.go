package trust

import "fmt"

const (
	TestIssuerID       = "ifs-test-iuph8yaith"
	ProductionIssuerID = "ifs-live-eibah7hah8"
)

const testIssuerKey = `-----BEGIN PUBLIC KEY-----
MFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAER/JQFfpKZinH3btYjuoYTZ9dqodt
EmHWiOCaVXVg9X2xacp7DKMJDobv9vQhXHuBo+QkRnwfcgZ0mMgXL7QxDw==
-----END PUBLIC KEY-----`

const productionIssuerKey = `-----BEGIN PUBLIC KEY-----
MFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEbFSlXcqD9S4yBeV9UUPajH13Qo5j
iNQivxKBEUCX/fQ18XKhV7stCPTVX7lExw7RBJ3B/f42+S55jIrXlfqk9g==
-----END PUBLIC KEY-----`

// DefaultAudiences are the audiences accepted when no trust file is configured.
var DefaultAudiences = []string{"ssgw", "ssge-dev", "ssgw-test"}

var builtinIssuers = []struct {
	id, description, key string
}{
	{TestIssuerID, "IFS Test", testIssuerKey},
	{ProductionIssuerID, "IFS Production", productionIssuerKey},
}

// Default returns the built-in registry with the IFS test and production issuers.
func Default() (*Registry, error) {
	issuers := make([]Issuer, 0, len(builtinIssuers))
	for _, b := range builtinIssuers {
		key, err := ParsePublicKey(b.key)
		if err != nil {
			return nil, fmt.Errorf("built-in issuer %q: %w", b.id, err)
		}
		issuers = append(issuers, Issuer{
			ID:          b.id,
			Description: b.description,
			Key:         key,
		})
	}
	return NewRegistry(issuers, DefaultAudiences)
}
