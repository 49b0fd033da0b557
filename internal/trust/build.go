package trust

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/vouch/internal/config"
)

// ECPEMType is the issuer type for an EC P-256 public key in PEM encoding.
const ECPEMType = "ec_pem"

type ecPEMConfig struct {
	Description string `mapstructure:"description"`
	// Key is the PEM encoded public key. Either Key or KeyFile must be set.
	Key string `mapstructure:"key"`
	// KeyFile is a path to a PEM encoded public key.
	KeyFile string `mapstructure:"key_file"`
}

// BuildRegistry creates a registry from the trust configuration.
func BuildRegistry(cfg *config.Config) (*Registry, error) {
	issuers := make([]Issuer, 0, len(cfg.Issuers))
	for _, ic := range cfg.Issuers {
		switch ic.Type {
		case ECPEMType:
			iss, err := newECPEMIssuer(ic)
			if err != nil {
				return nil, fmt.Errorf("building issuer %q: %w", ic.ID, err)
			}
			issuers = append(issuers, iss)
		default:
			return nil, fmt.Errorf("unknown issuer type %q for issuer %q", ic.Type, ic.ID)
		}
	}
	return NewRegistry(issuers, cfg.Audiences)
}

func newECPEMIssuer(ic config.IssuerConfig) (Issuer, error) {
	var conf ecPEMConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &conf,
	})
	if err != nil {
		return Issuer{}, fmt.Errorf("creating decoder: %w", err)
	}
	if err := decoder.Decode(ic.Config); err != nil {
		return Issuer{}, fmt.Errorf("decoding config: %w", err)
	}

	pemData := conf.Key
	switch {
	case conf.Key != "" && conf.KeyFile != "":
		return Issuer{}, fmt.Errorf("only one of 'key' and 'key_file' may be set")
	case conf.KeyFile != "":
		data, err := os.ReadFile(conf.KeyFile)
		if err != nil {
			return Issuer{}, fmt.Errorf("reading key file: %w", err)
		}
		pemData = string(data)
	case conf.Key == "":
		return Issuer{}, fmt.Errorf("missing 'key' or 'key_file'")
	}

	key, err := ParsePublicKey(pemData)
	if err != nil {
		return Issuer{}, err
	}
	return Issuer{
		ID:          ic.ID,
		Description: conf.Description,
		Key:         key,
	}, nil
}
