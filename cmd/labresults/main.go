package main

import (
	"os"

	"github.com/jpmpuerm/infirmary-client/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	configuration, err := config.ReadConfiguration()
	if err != nil {
		os.Exit(1)
	}
	configureLogger(configuration)

	if err := newRootCmd(&configuration).Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogger(configuration config.Configuration) {
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.Out = os.Stderr
	consoleWriter.TimeFormat = "2006-01-02T15:04:05Z07:00"
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Str("app", configuration.ApplicationName).Logger()
	zerolog.SetGlobalLevel(configuration.LogLevel)
}

func newRootCmd(configuration *config.Configuration) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "labresults",
		Short:        "Fetch and normalize laboratory results from the medical records API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(fetchCmd(configuration))
	rootCmd.AddCommand(normalizeCmd(configuration))
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}
