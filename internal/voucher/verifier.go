package voucher

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/vouch/internal/trust"
)

// Algorithm is the only signing method a voucher may use.
var Algorithm = jwt.SigningMethodES256

// Verifier checks vouchers against a trust registry.
// A Verifier holds no mutable state and may be shared between goroutines.
type Verifier struct {
	registry *trust.Registry
	leeway   time.Duration
	clock    func() time.Time
}

type Option func(*Verifier)

// WithLeeway tolerates clock skew when checking "exp" and "nbf". Defaults to zero.
func WithLeeway(leeway time.Duration) Option {
	return func(v *Verifier) {
		v.leeway = leeway
	}
}

// WithClock overrides the time source used for "exp" and "nbf".
func WithClock(clock func() time.Time) Option {
	return func(v *Verifier) {
		if clock != nil {
			v.clock = clock
		}
	}
}

func NewVerifier(registry *trust.Registry, opts ...Option) *Verifier {
	v := &Verifier{
		registry: registry,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Registry returns the registry this verifier trusts.
func (v *Verifier) Registry() *trust.Registry {
	return v.registry
}

// Verify decodes and verifies a voucher. It never panics and never returns nil;
// every failure is reported through the returned Result.
//
// Checks run in a fixed order and stop at the first failure: decoding, issuer
// presence and trust, audience presence and acceptance, signature and standard
// time claims, then the "jti" and "val" payload claims.
//
// Signature verification requires the payload to repeat "iss" and "aud", so a
// verified payload is never empty.
func (v *Verifier) Verify(token string) (res *Result) {
	var header Header
	defer func() {
		if r := recover(); r != nil {
			res = invalid(header, unverified(fmt.Errorf("%v", r)))
		}
	}()

	decoded, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil && !decodedWithUnknownMethod(decoded, err) {
		return invalid(nil, decodeError(err))
	}
	header = Header(decoded.Header)

	issRaw, ok := header["iss"]
	if !ok || !Present(issRaw) {
		return invalid(header, headerClaimMissing("iss"))
	}
	iss := FormatClaim(issRaw)
	issuer, ok := v.registry.Lookup(iss)
	if !ok {
		return invalid(header, unknownIssuer(iss))
	}

	audRaw, ok := header["aud"]
	if !ok || !Present(audRaw) {
		return invalid(header, headerClaimMissing("aud"))
	}
	// audiences are matched as strings only; an array never names an audience
	aud, ok := audRaw.(string)
	if !ok || !v.registry.AcceptsAudience(aud) {
		return invalid(header, unknownAudience(FormatClaim(audRaw)))
	}

	payload, cause := v.verifySignature(token, issuer, aud)
	if cause != nil {
		return invalid(header, cause)
	}

	if !Present(payload["jti"]) {
		return invalid(header, payloadClaimMissing("jti"))
	}
	val := payload["val"]
	if !Present(val) {
		return invalid(header, payloadClaimMissing("val"))
	}
	if !IsNumeric(val) {
		return invalid(header, notNumeric("val", FormatClaim(val)))
	}

	return valid(header, payload)
}

func (v *Verifier) verifySignature(token string, issuer trust.Issuer, aud string) (Claims, *Error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{Algorithm.Alg()}),
		jwt.WithAudience(aud),
		jwt.WithIssuer(issuer.ID),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.clock),
	)
	parsed, err := parser.ParseWithClaims(token, jwt.MapClaims{}, func(*jwt.Token) (any, error) {
		return issuer.Key, nil
	})
	if err != nil {
		return nil, unverified(err)
	}
	return Claims(parsed.Claims.(jwt.MapClaims)), nil
}

// decodedWithUnknownMethod reports whether the token was fully decoded and only
// its "alg" header was missing or unsupported. Such vouchers pass decoding and
// are rejected by signature verification instead.
func decodedWithUnknownMethod(decoded *jwt.Token, err error) bool {
	return decoded != nil &&
		decoded.Header != nil &&
		decoded.Claims != nil &&
		errors.Is(err, jwt.ErrTokenUnverifiable)
}
