package api

import (
	"net/http"

	"github.com/darmiel/vouch/internal/api/middleware"
	"github.com/darmiel/vouch/internal/voucher"
)

type Server struct {
	verifier *voucher.Verifier
	metrics  *metrics
}

func NewServer(verifier *voucher.Verifier) *Server {
	return &Server{
		verifier: verifier,
		metrics:  newMetrics(),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.Handle("GET "+MetricsRoute, s.metrics.handler())

	// voucher routes
	mux.HandleFunc("POST "+VerifyVoucherRoute, s.handleVerify)
	mux.HandleFunc("GET "+ListIssuersRoute, s.handleListIssuers)

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
