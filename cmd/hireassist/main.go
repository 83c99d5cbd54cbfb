// Package main provides the hireassist command line client for the AI hiring assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	verbose     bool
	apiURL      string
	storageFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hireassist",
		Short:         "AI Hiring Assistant client",
		Long:          "hireassist logs in to the hiring-assistant backend, extracts skills from job descriptions and ranks uploaded resumes against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Base URL of the hiring-assistant API (overrides API_URL)")
	root.PersistentFlags().StringVar(&opts.storageFile, "storage-file", "", "Session storage file")

	root.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newSkillsCmd(opts),
		newRankCmd(opts),
		newShellCmd(opts),
		newStubServerCmd(opts),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
