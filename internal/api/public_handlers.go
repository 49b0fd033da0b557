package api

import (
	"net/http"

	"github.com/darmiel/vouch/internal/api/presenter"
	"github.com/darmiel/vouch/internal/buildinfo"
	"github.com/darmiel/vouch/internal/trust"
	"github.com/darmiel/vouch/internal/voucher"
)

// AboutResponse describes the server build and the trust registry it verifies against.
type AboutResponse struct {
	buildinfo.Info

	Algorithm string `json:"algorithm"`
	Issuers   int    `json:"issuers"`
	Audiences int    `json:"audiences"`
}

// NewAboutResponse summarizes registry. A nil registry leaves the counts at zero.
func NewAboutResponse(registry *trust.Registry) AboutResponse {
	about := AboutResponse{
		Info:      buildinfo.GetBuildInfo(),
		Algorithm: voucher.Algorithm.Alg(),
	}
	if registry != nil {
		about.Issuers = len(registry.Issuers())
		about.Audiences = len(registry.Audiences())
	}
	return about
}

// handleHealth responds with a plain OK; the registry is immutable, so a
// running server is always ready.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, NewAboutResponse(s.verifier.Registry()), http.StatusOK)
}
