package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/darmiel/vouch/internal/api"
	"github.com/darmiel/vouch/internal/report"
	"github.com/darmiel/vouch/internal/voucher"
)

func TestReadVoucher(t *testing.T) {
	tests := []struct {
		name  string
		arg   string
		stdin string
		want  string
	}{
		{name: "argument", arg: " a.b.c\n", want: "a.b.c"},
		{name: "stdin", arg: "-", stdin: "a.b.c\n", want: "a.b.c"},
		{name: "empty stdin", arg: "-", stdin: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readVoucher(tt.arg, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readVoucher() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readVoucher() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much too long", 8, "much ..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPrintVerification(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		var buf bytes.Buffer
		printVerification(&buf, &api.VerifyResponse{
			Result: &voucher.Result{Valid: false, Errors: []string{`Header lacks "iss" claim`}},
		})
		out := buf.String()
		if !strings.Contains(out, "Voucher is invalid") {
			t.Errorf("missing verdict in %q", out)
		}
		if !strings.Contains(out, `Header lacks "iss" claim`) {
			t.Errorf("missing diagnostic in %q", out)
		}
	})

	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		printVerification(&buf, &api.VerifyResponse{
			Result: &voucher.Result{Valid: true},
			Report: []report.Row{
				{Label: "Unique id", Claim: "jti", Value: "abc123"},
				{Label: "User", Claim: "crsid", Value: report.Placeholder},
			},
		})
		out := buf.String()
		for _, want := range []string{"Voucher is valid", "Unique id", "abc123", "User"} {
			if !strings.Contains(out, want) {
				t.Errorf("output lacks %q:\n%s", want, out)
			}
		}
	})
}
