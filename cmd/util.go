package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

// errVoucherInvalid makes the process exit with status 1 without logging.
var errVoucherInvalid = errors.New("voucher is invalid")

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// readVoucher returns the voucher argument, reading it from stdin if it is "-".
func readVoucher(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return strings.TrimSpace(arg), nil
	}
	log.Debug().Msg("Reading voucher from stdin")
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read voucher from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func logError(err error, correlation, msg string) error {
	log.Error().Err(err).Str("correlation_id", correlation).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
