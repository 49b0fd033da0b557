package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/vouch/internal/api"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the vouch installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.RemoteAddr == "" {
			return infoLocally(cmd, args)
		}
		return infoRemote(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func infoRemote(cmd *cobra.Command, _ []string) error {
	cli, err := f.GetClient()
	if err != nil {
		return err
	}
	log.Info().Msg("Fetching build info from server...")
	info, correlation, err := cli.Info(cmd.Context())
	if err != nil {
		return logError(err, correlation, "failed to get info from server")
	}
	printInfo(cmd.OutOrStdout(), info)
	return nil
}

func infoLocally(cmd *cobra.Command, _ []string) error {
	log.Info().Msg("Showing local build info...")
	registry, _, err := f.LoadRegistry()
	if err != nil {
		log.Warn().Err(err).Msg("Trust registry unavailable, omitting trust summary")
	}
	info := api.NewAboutResponse(registry)
	printInfo(cmd.OutOrStdout(), &info)
	return nil
}

func printInfo(w io.Writer, info *api.AboutResponse) {
	_, _ = fmt.Fprintln(w, bold("\n── vouch Build Information ──"))
	_, _ = fmt.Fprintf(w, "  %s:    %s\n", faint("Version"), info.Version)
	_, _ = fmt.Fprintf(w, "  %s:     %s\n", faint("Commit"), info.CommitHash)
	_, _ = fmt.Fprintf(w, "  %s:  %s\n", faint("Algorithm"), info.Algorithm)
	_, _ = fmt.Fprintf(w, "  %s:    %d\n", faint("Issuers"), info.Issuers)
	_, _ = fmt.Fprintf(w, "  %s:  %d\n", faint("Audiences"), info.Audiences)
}
