package report

import (
	"strconv"
	"time"

	"github.com/darmiel/vouch/internal/trust"
	"github.com/darmiel/vouch/internal/voucher"
)

// Placeholder is shown for absent timestamps.
const Placeholder = "—"

// TimestampLayout formats timestamps in UTC, e.g. "October 19, 2026 3:04 PM".
const TimestampLayout = "January 2, 2006 3:04 PM"

// Row is one line of the claim table.
type Row struct {
	Label string `json:"label"`
	Claim string `json:"claim"`
	Value string `json:"value"`
}

// Claims builds the claim table of a valid result.
// It returns nil for invalid results.
func Claims(res *voucher.Result, registry *trust.Registry) []Row {
	if res == nil || !res.Valid {
		return nil
	}
	p := res.Payload
	return []Row{
		{Label: "Unique id", Claim: "jti", Value: voucher.FormatClaim(p["jti"])},
		{Label: "Value", Claim: "val", Value: voucher.FormatClaim(p["val"])},
		{Label: "User", Claim: "crsid", Value: voucher.FormatClaim(p["crsid"])},
		{Label: "Issuer", Claim: "iss", Value: registry.Describe(voucher.FormatClaim(p["iss"]))},
		{Label: "Intended use", Claim: "aud", Value: voucher.FormatClaim(p["aud"])},
		{Label: "Issued at", Claim: "iat", Value: Timestamp(p["iat"])},
		{Label: "Invalid before", Claim: "nbf", Value: Timestamp(p["nbf"])},
		{Label: "Invalid after", Claim: "exp", Value: Timestamp(p["exp"])},
	}
}

// Timestamp formats a Unix seconds claim, or returns Placeholder if it is absent,
// zero or not a number.
func Timestamp(v any) string {
	if !voucher.Present(v) {
		return Placeholder
	}
	var secs float64
	switch t := v.(type) {
	case float64:
		secs = t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return Placeholder
		}
		secs = f
	default:
		return Placeholder
	}
	return time.Unix(int64(secs), 0).UTC().Format(TimestampLayout)
}
