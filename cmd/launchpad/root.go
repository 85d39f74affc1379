package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "launchpad",
		Short:         "Launchpad serves the TechFlow landing page and its live hero",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(flags.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Load environment variables from this file (default .env if present)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newContentCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadEnv reads a dotenv file without overriding variables already set.
// The default .env is optional; an explicit file must exist.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return newCommandError("load environment", path, err, "Check that the --env-file path exists.")
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newCommandError("load environment", ".env", err, "Fix or remove the .env file.")
	}
	return nil
}
