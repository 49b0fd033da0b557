package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"
	MetricsRoute     = "/metrics"

	VerifyVoucherRoute = "/v1/vouchers/verify"
	ListIssuersRoute   = "/v1/issuers"
)
