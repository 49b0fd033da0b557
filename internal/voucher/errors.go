package voucher

import (
	"errors"
	"fmt"
)

// Kind classifies why a voucher was rejected.
type Kind string

const (
	// KindDecode means the voucher is not a well-formed three segment token.
	KindDecode Kind = "decode"
	// KindMissingClaim means a required header or payload claim is absent.
	KindMissingClaim Kind = "missing_claim"
	// KindUntrusted means the issuer or audience is not known to the registry.
	KindUntrusted Kind = "untrusted"
	// KindUnverified means the signature or the standard claims failed verification.
	KindUnverified Kind = "unverified"
	// KindMalformedClaim means a claim is present but its value is unusable.
	KindMalformedClaim Kind = "malformed_claim"
)

var (
	ErrDecode         = errors.New("voucher cannot be decoded")
	ErrMissingClaim   = errors.New("missing claim")
	ErrUntrusted      = errors.New("untrusted voucher")
	ErrUnverified     = errors.New("voucher could not be verified")
	ErrMalformedClaim = errors.New("malformed claim")
)

var kindSentinels = map[Kind]error{
	KindDecode:         ErrDecode,
	KindMissingClaim:   ErrMissingClaim,
	KindUntrusted:      ErrUntrusted,
	KindUnverified:     ErrUnverified,
	KindMalformedClaim: ErrMalformedClaim,
}

// Error is the typed failure behind a single diagnostic of a Result.
// Error() returns the human-readable diagnostic, errors.Is matches the sentinel
// of its Kind, and Unwrap exposes the underlying jwt error if there is one.
type Error struct {
	Kind Kind
	// Claim names the offending claim, if any.
	Claim string
	// Value is the offending claim value rendered as a string, if any.
	Value string

	message string
	err     error
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func decodeError(err error) *Error {
	return &Error{
		Kind:    KindDecode,
		message: "Voucher cannot be decoded.",
		err:     err,
	}
}

func headerClaimMissing(claim string) *Error {
	return &Error{
		Kind:    KindMissingClaim,
		Claim:   claim,
		message: fmt.Sprintf("Header lacks %q claim", claim),
	}
}

func payloadClaimMissing(claim string) *Error {
	return &Error{
		Kind:    KindMissingClaim,
		Claim:   claim,
		message: fmt.Sprintf("Payload lacks %q claim", claim),
	}
}

func unknownIssuer(iss string) *Error {
	return &Error{
		Kind:    KindUntrusted,
		Claim:   "iss",
		Value:   iss,
		message: fmt.Sprintf("Voucher issuer \"%s\" is unknown", iss),
	}
}

func unknownAudience(aud string) *Error {
	return &Error{
		Kind:    KindUntrusted,
		Claim:   "aud",
		Value:   aud,
		message: fmt.Sprintf("Audience \"%s\" is unknown", aud),
	}
}

func unverified(err error) *Error {
	return &Error{
		Kind:    KindUnverified,
		message: "Voucher could not be verified: " + err.Error(),
		err:     err,
	}
}

func notNumeric(claim string, value string) *Error {
	return &Error{
		Kind:    KindMalformedClaim,
		Claim:   claim,
		Value:   value,
		message: fmt.Sprintf("%q claim could not be parsed as a number", claim),
	}
}
