package trust

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"sort"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is a trust anchor allowed to sign vouchers.
type Issuer struct {
	// ID is the value of the "iss" claim this issuer signs with.
	ID string
	// Description is a human-readable name, e.g. "IFS Production".
	Description string
	// Key verifies ES256 signatures of this issuer.
	Key *ecdsa.PublicKey
}

// Registry holds the trusted issuers and accepted audiences.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	issuers   map[string]Issuer
	audiences map[string]struct{}
}

// NewRegistry validates the given issuers and audiences and returns an immutable registry.
func NewRegistry(issuers []Issuer, audiences []string) (*Registry, error) {
	r := &Registry{
		issuers:   make(map[string]Issuer, len(issuers)),
		audiences: make(map[string]struct{}, len(audiences)),
	}
	for idx, iss := range issuers {
		if iss.ID == "" {
			return nil, fmt.Errorf("issuer at index %d has empty id", idx)
		}
		if _, exists := r.issuers[iss.ID]; exists {
			return nil, fmt.Errorf("duplicate issuer %q", iss.ID)
		}
		if iss.Key == nil {
			return nil, fmt.Errorf("issuer %q has no public key", iss.ID)
		}
		if iss.Key.Curve == nil || iss.Key.Curve.Params().Name != elliptic.P256().Params().Name {
			return nil, fmt.Errorf("issuer %q: key is not on curve P-256", iss.ID)
		}
		r.issuers[iss.ID] = iss
	}
	for idx, aud := range audiences {
		if aud == "" {
			return nil, fmt.Errorf("audience at index %d is empty", idx)
		}
		r.audiences[aud] = struct{}{}
	}
	return r, nil
}

// Lookup returns the issuer registered under id.
func (r *Registry) Lookup(id string) (Issuer, bool) {
	iss, ok := r.issuers[id]
	return iss, ok
}

// AcceptsAudience reports whether aud is one of the accepted audiences.
func (r *Registry) AcceptsAudience(aud string) bool {
	_, ok := r.audiences[aud]
	return ok
}

// Issuers returns all issuers sorted by id.
func (r *Registry) Issuers() []Issuer {
	res := make([]Issuer, 0, len(r.issuers))
	for _, iss := range r.issuers {
		res = append(res, iss)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}

// Audiences returns all accepted audiences sorted.
func (r *Registry) Audiences() []string {
	res := make([]string, 0, len(r.audiences))
	for aud := range r.audiences {
		res = append(res, aud)
	}
	sort.Strings(res)
	return res
}

// Describe returns the description of the issuer id, or "" if it is unknown.
func (r *Registry) Describe(id string) string {
	return r.issuers[id].Description
}

// ParsePublicKey parses a PEM encoded EC public key.
func ParsePublicKey(pemData string) (*ecdsa.PublicKey, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("parsing EC public key: %w", err)
	}
	return key, nil
}
