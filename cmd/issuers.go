package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/vouch/internal/api"
	"github.com/darmiel/vouch/internal/fingerprint"
	"github.com/darmiel/vouch/internal/voucher"
)

var issuersCmd = &cobra.Command{
	Use:   "issuers",
	Short: "List trusted issuers and accepted audiences",
	Long: `Lists the issuers vouchers may be signed by, with the SHA256 fingerprint of
their public keys, and the audiences vouchers may be intended for.
With --server, the registry of the remote server is listed.`,
	Example: `  vouch issuers
  vouch issuers -f trust.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var listing *api.IssuersResponse
		if f.RemoteAddr == "" {
			registry, _, err := f.LoadRegistry()
			if err != nil {
				return err
			}
			listing = &api.IssuersResponse{
				Audiences: registry.Audiences(),
				Algorithm: voucher.Algorithm.Alg(),
			}
			for _, iss := range registry.Issuers() {
				listing.Issuers = append(listing.Issuers, api.IssuerInfo{
					ID:             iss.ID,
					Description:    iss.Description,
					KeyFingerprint: fingerprint.Key(iss.Key),
				})
			}
		} else {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			resp, correlation, err := cli.ListIssuers(cmd.Context())
			if err != nil {
				return logError(err, correlation, "failed to list issuers on server")
			}
			listing = resp
		}

		log.Debug().Msgf("Found %d issuer(s)", len(listing.Issuers))
		printIssuers(cmd.OutOrStdout(), listing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuersCmd)
}

func printIssuers(w io.Writer, listing *api.IssuersResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Issuer", "Description", "Key Fingerprint"})
	for _, iss := range listing.Issuers {
		description := iss.Description
		if description == "" {
			description = faint("(none)")
		}
		t.AppendRow(table.Row{
			bold(iss.ID),
			truncate(description, 48),
			faint(truncate(iss.KeyFingerprint, 29)),
		})
	}

	s := table.StyleRounded
	s.Format.Header = text.FormatDefault
	t.SetStyle(s)
	t.Render()

	_, _ = fmt.Fprintf(w, "  %s: %s\n", faint("Algorithm"), listing.Algorithm)
	_, _ = fmt.Fprintf(w, "  %s: %s\n", faint("Audiences"), strings.Join(listing.Audiences, ", "))
}
