package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const sample = `
audiences: [ssgw, ssgw-test]
leeway: 30s
issuers:
  - id: ifs-test-iuph8yaith
    type: ec_pem
    description: IFS Test
    key_file: keys/test.pem
  - id: ifs-live-eibah7hah8
    type: ec_pem
    description: IFS Production
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if diff := cmp.Diff([]string{"ssgw", "ssgw-test"}, cfg.Audiences); diff != "" {
		t.Errorf("audiences mismatch (-want +got):\n%s", diff)
	}
	if cfg.Leeway != 30*time.Second {
		t.Errorf("Leeway = %v, want 30s", cfg.Leeway)
	}

	want := []IssuerConfig{
		{
			ID:   "ifs-test-iuph8yaith",
			Type: "ec_pem",
			Config: map[string]any{
				"description": "IFS Test",
				"key_file":    "keys/test.pem",
			},
		},
		{
			ID:   "ifs-live-eibah7hah8",
			Type: "ec_pem",
			Config: map[string]any{
				"description": "IFS Production",
			},
		},
	}
	if diff := cmp.Diff(want, cfg.Issuers); diff != "" {
		t.Errorf("issuers mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "no issuers",
			input:   "audiences: [ssgw]",
			wantErr: "no issuers configured",
		},
		{
			name: "no audiences",
			input: `issuers:
  - id: a
    type: ec_pem`,
			wantErr: "no audiences configured",
		},
		{
			name: "empty id",
			input: `audiences: [ssgw]
issuers:
  - type: ec_pem`,
			wantErr: "issuer at index 0 has empty id",
		},
		{
			name: "duplicate id",
			input: `audiences: [ssgw]
issuers:
  - id: a
    type: ec_pem
  - id: a
    type: ec_pem`,
			wantErr: `issuer "a" is defined more than once`,
		},
		{
			name: "missing type",
			input: `audiences: [ssgw]
issuers:
  - id: a`,
			wantErr: `issuer "a" has empty type`,
		},
		{
			name: "empty audience",
			input: `audiences: [ssgw, ""]
issuers:
  - id: a
    type: ec_pem`,
			wantErr: "audience at index 1 is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Issuers) != 2 {
		t.Errorf("got %d issuers, want 2", len(cfg.Issuers))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}
