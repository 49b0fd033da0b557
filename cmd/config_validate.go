package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the trust file",
	Long: `Loads the trust file given with --trust, parses every issuer key and
reports whether the resulting registry is usable.`,
	Example: `  vouch config validate -f trust.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.TrustPath == "" {
			return fmt.Errorf("trust file not specified (use --trust)")
		}
		registry, leeway, err := f.LoadRegistry()
		if err != nil {
			log.Error().Err(err).Msg("Trust file is invalid.")
			return err
		}
		log.Info().
			Int("issuers", len(registry.Issuers())).
			Int("audiences", len(registry.Audiences())).
			Dur("leeway", leeway).
			Msg("Trust file is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
