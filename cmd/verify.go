package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/vouch/internal/api"
	"github.com/darmiel/vouch/internal/fingerprint"
	"github.com/darmiel/vouch/internal/report"
	"github.com/darmiel/vouch/pkg/client"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var verifyOutput string

var verifyCmd = &cobra.Command{
	Use:   "verify VOUCHER",
	Short: "Verify a voucher and show its claims",
	Long: `Verifies the signature, issuer, audience and validity window of a voucher
and prints the claims it carries. If the voucher is invalid, the reason is printed
and the command exits with status 1.

Use "-" to read the voucher from stdin. With --server, the voucher is verified
by a remote vouch server instead of locally.`,
	Example: `  # Verify a voucher with the built-in trust registry
  vouch verify eyJhbGciOiJFUzI1NiIs...

  # Verify a voucher from stdin against a custom trust file
  pbpaste | vouch verify -f trust.yaml -

  # Machine readable output
  vouch verify --output json eyJhbGciOiJFUzI1NiIs...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verifyOutput != outputText && verifyOutput != outputJSON {
			return fmt.Errorf("unknown output format %q (one of: %s, %s)", verifyOutput, outputText, outputJSON)
		}
		token, err := readVoucher(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		var resp *api.VerifyResponse
		if f.RemoteAddr == "" {
			resp, err = verifyLocally(token)
		} else {
			resp, err = verifyRemote(cmd, token)
		}
		if err != nil {
			return err
		}

		log.Debug().
			Str("fingerprint", resp.Fingerprint).
			Bool("valid", resp.Result.Valid).
			Msg("voucher verified")

		if verifyOutput == outputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
		} else {
			printVerification(cmd.OutOrStdout(), resp)
		}

		if !resp.Result.Valid {
			return errVoucherInvalid
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", outputText,
		fmt.Sprintf("Output format (one of: %s, %s)", outputText, outputJSON))
}

func verifyLocally(token string) (*api.VerifyResponse, error) {
	verifier, err := f.GetVerifier()
	if err != nil {
		return nil, err
	}
	res := verifier.Verify(token)
	return &api.VerifyResponse{
		Result:      res,
		Report:      report.Claims(res, verifier.Registry()),
		Fingerprint: fingerprint.Voucher(token),
	}, nil
}

func verifyRemote(cmd *cobra.Command, token string) (*api.VerifyResponse, error) {
	cli, err := f.GetClient()
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Verifying voucher on %s...", f.RemoteAddr)
	resp, correlation, err := cli.VerifyVoucher(cmd.Context(), token)
	if errors.Is(err, client.ErrVoucherTooLarge) {
		return nil, logError(err, correlation, "voucher exceeds the server's size limit")
	}
	if err != nil {
		return nil, logError(err, correlation, "failed to verify voucher on server")
	}
	return resp, nil
}

func printVerification(w io.Writer, resp *api.VerifyResponse) {
	res := resp.Result
	if !res.Valid {
		_, _ = fmt.Fprintln(w, bold(red("Voucher is invalid")))
		for _, e := range res.Errors {
			_, _ = fmt.Fprintf(w, "  %s %s\n", red("✖"), e)
		}
		return
	}

	_, _ = fmt.Fprintln(w, bold(green("Voucher is valid")))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Claim", "Value"})
	for _, row := range resp.Report {
		value := row.Value
		if value == report.Placeholder {
			value = faint(value)
		}
		t.AppendRow(table.Row{row.Label, value})
	}

	s := table.StyleRounded
	s.Format.Header = text.FormatDefault
	t.SetStyle(s)
	t.Render()
}
