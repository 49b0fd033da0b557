package voucher

// Header is the decoded, unverified JOSE header of a voucher.
type Header map[string]any

// Claims is the verified payload of a voucher.
type Claims map[string]any

// Result is the outcome of verifying one voucher.
//
// A valid result carries the header and the verified payload. An invalid result
// carries exactly one diagnostic in Errors, plus the header whenever the voucher
// could at least be decoded.
type Result struct {
	Valid   bool     `json:"valid"`
	Header  Header   `json:"header,omitempty"`
	Payload Claims   `json:"payload,omitempty"`
	Errors  []string `json:"errors,omitempty"`

	cause *Error
}

func valid(header Header, payload Claims) *Result {
	return &Result{
		Valid:   true,
		Header:  header,
		Payload: payload,
	}
}

func invalid(header Header, cause *Error) *Result {
	return &Result{
		Valid:  false,
		Header: header,
		Errors: []string{cause.Error()},
		cause:  cause,
	}
}

// Err returns the typed failure of an invalid result, or nil if the result is valid
// or was not produced by a Verifier (e.g. decoded from JSON).
func (r *Result) Err() *Error {
	if r == nil {
		return nil
	}
	return r.cause
}

// Kind returns the failure kind of an invalid result, or "" for valid results.
func (r *Result) Kind() Kind {
	if err := r.Err(); err != nil {
		return err.Kind
	}
	return ""
}
