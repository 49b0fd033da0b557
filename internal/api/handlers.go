package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/vouch/internal/api/presenter"
	"github.com/darmiel/vouch/internal/fingerprint"
	"github.com/darmiel/vouch/internal/report"
	"github.com/darmiel/vouch/internal/voucher"
)

// maxPayloadSize bounds request bodies; vouchers are a few hundred bytes.
const maxPayloadSize = 64 << 10

type VerifyPayload struct {
	// Voucher is the raw voucher to verify.
	Voucher string `json:"voucher"`
}

type VerifyResponse struct {
	// Result is the verification verdict. An invalid voucher is still a 200 response.
	Result *voucher.Result `json:"result"`

	// Report is the claim table, only present for valid vouchers.
	Report []report.Row `json:"report,omitempty"`

	// Fingerprint identifies the voucher in server logs.
	Fingerprint string `json:"fingerprint"`
}

type IssuerInfo struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	KeyFingerprint string `json:"key_fingerprint"`
}

type IssuersResponse struct {
	Issuers   []IssuerInfo `json:"issuers"`
	Audiences []string     `json:"audiences"`
	Algorithm string       `json:"algorithm"`
}

func DecodePayload(r *http.Request, dest any) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			return err
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleVerify verifies the voucher in the request body.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadSize)

	var payload VerifyPayload
	if err := DecodePayload(r, &payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			presenter.Error(w, r, "request payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		if errors.Is(err, io.EOF) {
			presenter.Error(w, r, "empty request payload", http.StatusBadRequest)
			return
		}
		logger.Warn().Err(err).Msg("failed to decode verify request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	res := s.verifier.Verify(payload.Voucher)
	s.metrics.observe(res)

	fp := fingerprint.Voucher(payload.Voucher)
	event := logger.Info().
		Str("fingerprint", fp).
		Bool("valid", res.Valid)
	if !res.Valid {
		event = event.Str("kind", string(res.Kind())).Strs("errors", res.Errors)
	}
	event.Msg("voucher.verified")

	presenter.JSON(w, r, VerifyResponse{
		Result:      res,
		Report:      report.Claims(res, s.verifier.Registry()),
		Fingerprint: fp,
	}, http.StatusOK)
}

// handleListIssuers lists the trusted issuers and accepted audiences.
func (s *Server) handleListIssuers(w http.ResponseWriter, r *http.Request) {
	registry := s.verifier.Registry()

	resp := IssuersResponse{
		Issuers:   make([]IssuerInfo, 0),
		Audiences: registry.Audiences(),
		Algorithm: voucher.Algorithm.Alg(),
	}
	for _, iss := range registry.Issuers() {
		resp.Issuers = append(resp.Issuers, IssuerInfo{
			ID:             iss.ID,
			Description:    iss.Description,
			KeyFingerprint: fingerprint.Key(iss.Key),
		})
	}
	presenter.JSON(w, r, resp, http.StatusOK)
}
