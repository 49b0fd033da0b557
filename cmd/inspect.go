package cmd

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect VOUCHER",
	Short: "Print the header and claims of a voucher without verifying it",
	Long: `The inspect command decodes a voucher and dumps its header and payload.
It does not perform any validation, it simply decodes the voucher and shows its contents.
Use 'vouch verify' to check whether the voucher can be trusted.`,
	Example: `  vouch inspect eyJhbGciOiJFUzI1NiIs...`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenInput, err := readVoucher(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if tokenInput == "" {
			return fmt.Errorf("voucher cannot be empty")
		}

		token, _, err := jwt.NewParser().ParseUnverified(tokenInput, jwt.MapClaims{})
		if err != nil && (token == nil || token.Header == nil) {
			return fmt.Errorf("decoding voucher: %w", err)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fmt.Errorf("invalid voucher claims")
		}

		log.Info().Msg("Voucher Header:")
		log.Info().Msg(spew.Sdump(token.Header))
		log.Info().Msg("Voucher Claims:")
		log.Info().Msg(spew.Sdump(claims))
		if err != nil {
			log.Warn().Err(err).Msg("voucher decoded partially")
		}

		if issRaw, ok := token.Header["iss"]; ok {
			log.Info().Msgf("Issuer (iss): %v", issRaw)
		} else {
			log.Warn().Msg("Voucher header does not contain 'iss' claim")
		}

		if audRaw, ok := token.Header["aud"]; ok {
			log.Info().Msgf("Audience (aud): %v", audRaw)
		} else {
			log.Warn().Msg("Voucher header does not contain 'aud' claim")
		}

		// print & parse expiration if present and print remaining
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			log.Info().Msgf("Expiration (exp): %v (in %v)", exp.Time, time.Until(exp.Time).Round(time.Second))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
