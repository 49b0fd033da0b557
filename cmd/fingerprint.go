package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darmiel/vouch/internal/fingerprint"
)

var fingerprintRaw bool

var fingerprintCmd = &cobra.Command{
	Use:     "fingerprint VOUCHER",
	Aliases: []string{"fp"},
	Short:   `Calculate the fingerprint of a voucher`,
	Long: `Calculates the SHA256 -> Base64 fingerprint of a voucher.
This is the value the vouch server logs in the 'fingerprint' field instead of the voucher itself.`,
	Example: `  # Calculate the fingerprint of a voucher
  vouch fingerprint eyJhbGciOiJFUzI1NiIs...

  # Calculate the fingerprint of a voucher from stdin
  echo "eyJ..." | vouch fp -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readVoucher(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("voucher cannot be empty")
		}

		fp := fingerprint.Voucher(token)
		if fingerprintRaw {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), fp)
		} else {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Fingerprint:", fp)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)

	fingerprintCmd.Flags().BoolVarP(&fingerprintRaw, "raw", "r", false,
		"Output only the fingerprint value without additional text")
}
