package api

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/darmiel/vouch/internal/api/middleware"
	"github.com/darmiel/vouch/internal/api/presenter"
	"github.com/darmiel/vouch/internal/trust"
	"github.com/darmiel/vouch/internal/voucher"
)

func newTestServer(t *testing.T) (*httptest.Server, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	registry, err := trust.NewRegistry([]trust.Issuer{
		{ID: "test-issuer", Description: "Test Issuer", Key: &key.PublicKey},
	}, []string{"ssgw"})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewServer(voucher.NewVerifier(registry)).Routes())
	t.Cleanup(srv.Close)
	return srv, key
}

func signVoucher(t *testing.T, key *ecdsa.PrivateKey, val string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss":   "test-issuer",
		"aud":   "ssgw",
		"jti":   "x",
		"val":   val,
		"crsid": "ab123",
	})
	token.Header["iss"] = "test-issuer"
	token.Header["aud"] = "ssgw"
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func postVerify(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+VerifyVoucherRoute, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestHandleVerify(t *testing.T) {
	srv, key := newTestServer(t)

	t.Run("valid voucher", func(t *testing.T) {
		body, _ := json.Marshal(VerifyPayload{Voucher: signVoucher(t, key, "42")})
		resp := postVerify(t, srv, string(body))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		got := decode[VerifyResponse](t, resp)
		if !got.Result.Valid {
			t.Fatalf("result invalid: %v", got.Result.Errors)
		}
		if got.Result.Payload["crsid"] != "ab123" {
			t.Errorf("payload = %v", got.Result.Payload)
		}
		if len(got.Report) != 8 || got.Report[3].Value != "Test Issuer" {
			t.Errorf("report = %+v", got.Report)
		}
		if got.Fingerprint == "" {
			t.Error("missing fingerprint")
		}
	})

	t.Run("invalid voucher is not an http error", func(t *testing.T) {
		body, _ := json.Marshal(VerifyPayload{Voucher: signVoucher(t, key, "abc")})
		resp := postVerify(t, srv, string(body))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		got := decode[VerifyResponse](t, resp)
		if got.Result.Valid {
			t.Fatal("result valid")
		}
		want := []string{`"val" claim could not be parsed as a number`}
		if diff := cmp.Diff(want, got.Result.Errors); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
		if got.Result.Header == nil {
			t.Error("header missing from invalid result")
		}
		if got.Report != nil {
			t.Errorf("report present for invalid voucher: %v", got.Report)
		}
	})

	t.Run("empty voucher", func(t *testing.T) {
		resp := postVerify(t, srv, `{"voucher": ""}`)
		got := decode[VerifyResponse](t, resp)
		if diff := cmp.Diff([]string{"Voucher cannot be decoded."}, got.Result.Errors); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
		if got.Result.Header != nil {
			t.Errorf("header = %v, want none", got.Result.Header)
		}
	})

	for name, body := range map[string]string{
		"malformed json": `{"voucher": `,
		"unknown field":  `{"token": "abc"}`,
		"extra data":     `{"voucher": "a"} {"voucher": "b"}`,
		"empty body":     ``,
	} {
		t.Run(name, func(t *testing.T) {
			resp := postVerify(t, srv, body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			errResp := decode[presenter.ErrorResponse](t, resp)
			if errResp.CorrelationID == "" || errResp.CorrelationID != resp.Header.Get(middleware.CorrelationIDHeader) {
				t.Errorf("correlation id = %q, header = %q", errResp.CorrelationID, resp.Header.Get(middleware.CorrelationIDHeader))
			}
		})
	}
}

func TestHandleListIssuers(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + ListIssuersRoute)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	got := decode[IssuersResponse](t, resp)
	if len(got.Issuers) != 1 || got.Issuers[0].ID != "test-issuer" || got.Issuers[0].KeyFingerprint == "" {
		t.Errorf("issuers = %+v", got.Issuers)
	}
	if diff := cmp.Diff([]string{"ssgw"}, got.Audiences); diff != "" {
		t.Errorf("audiences mismatch (-want +got):\n%s", diff)
	}
	if got.Algorithm != "ES256" {
		t.Errorf("algorithm = %q", got.Algorithm)
	}
}

func TestPublicRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+HealthCheckRoute, nil)
	req.Header.Set(middleware.CorrelationIDHeader, "given-id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get(middleware.CorrelationIDHeader); got != "given-id" {
		t.Errorf("correlation id = %q, want given-id", got)
	}

	resp, err = http.Get(srv.URL + AboutRoute)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("about status = %d", resp.StatusCode)
	}
	var about AboutResponse
	if err := json.NewDecoder(resp.Body).Decode(&about); err != nil {
		t.Fatalf("decoding about: %v", err)
	}
	if about.Service != "vouch" || about.Algorithm != "ES256" || about.Issuers != 1 {
		t.Errorf("about = %+v", about)
	}
}

func TestMetrics(t *testing.T) {
	srv, key := newTestServer(t)

	body, _ := json.Marshal(VerifyPayload{Voucher: signVoucher(t, key, "1")})
	postVerify(t, srv, string(body))
	postVerify(t, srv, `{"voucher": "garbage"}`)

	resp, err := http.Get(srv.URL + MetricsRoute)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	text := string(raw)

	for _, want := range []string{
		`vouch_verifications_total{outcome="valid"} 1`,
		`vouch_verifications_total{outcome="decode"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
