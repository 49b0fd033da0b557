package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darmiel/vouch/internal/buildinfo"
	"github.com/darmiel/vouch/internal/logging"
)

// global flags
var (
	userConfig string
)

var f = NewFactory()

const (
	LogLevelKey   = "log.level"
	LogFormatKey  = "log.format"
	LogNoColorKey = "log.no_color"

	VouchAddrKey = "addr"
	TrustFileKey = "trust"
	LeewayKey    = "leeway"
)

var rootCmd = &cobra.Command{
	Use:   "vouch",
	Short: fmt.Sprintf("vouch voucher verifier (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `vouch verifies and debugs vouchers for the self service gateway.
A voucher is an ES256 signed token whose header names a trusted issuer ("iss")
and an accepted audience ("aud"). vouch checks the voucher against its trust
registry and shows the claims it carries.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := loadDotEnv()
		configPath, configErr := initConfig()
		if err := logging.Init(logging.Config{
			Level:   viper.GetString(LogLevelKey),
			Format:  viper.GetString(LogFormatKey),
			NoColor: viper.GetBool(LogNoColorKey),
		}); err != nil {
			return err
		}
		if envErr != nil { // handle errors after logging is initialized
			return envErr
		}
		if configErr != nil {
			return configErr
		}
		if configPath != "" {
			log.Debug().Msgf("using config file: %s", configPath)
		}
		if viper.GetBool(LogNoColorKey) {
			color.NoColor = true
		}
		f.RemoteAddr = viper.GetString(VouchAddrKey)
		f.TrustPath = viper.GetString(TrustFileKey)
		f.Leeway = viper.GetDuration(LeewayKey)
		f.LeewaySet = viper.IsSet(LeewayKey)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if errors.Is(err, errVoucherInvalid) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("execution failed")
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	rootCmd.PersistentFlags().StringVar(&userConfig, "user-config", "",
		"User configuration file for default values (default is $HOME/.vouch.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(LogLevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	_ = viper.BindPFlag(LogFormatKey, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(LogNoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentFlags().String("server", "", "Address of a remote vouch server")
	_ = viper.BindPFlag(VouchAddrKey, rootCmd.PersistentFlags().Lookup("server"))

	f.bindTrustFlags(rootCmd.PersistentFlags())
	_ = viper.BindPFlag(TrustFileKey, rootCmd.PersistentFlags().Lookup("trust"))
	_ = viper.BindPFlag(LeewayKey, rootCmd.PersistentFlags().Lookup("leeway"))

	viper.SetEnvPrefix("VOUCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))

	viper.AutomaticEnv()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// loadDotEnv loads a .env file from the working directory, if there is one.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func initConfig() (string, error) {
	// reads in config file and ENV variables if set.
	if userConfig != "" {
		viper.SetConfigFile(userConfig)
	} else {
		// search order: current dir, $HOME, XDG config
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		config, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(config + "/vouch")
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".vouch")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundError) {
			return "", err
		}
	} else {
		return viper.ConfigFileUsed(), nil
	}

	return "", nil
}
