package cmd

import (
	"github.com/joho/godotenv"
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"github.com/jrsteele09/decap-oauth-bridge/internal/logging"
	"github.com/spf13/cobra"
)

var verbose = false

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cmsrender",
		Short: "Pre-render CMS content into static pages",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()

			level := config.New().GetLogLevel()
			if verbose {
				level = "debug"
			}
			logging.SetupWriter(cmd.ErrOrStderr(), "DEV", level)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newMarkdownCmd())
	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}
