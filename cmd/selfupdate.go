package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the GitHub repository releases are fetched from.
const githubRepoSlug = "giantswarm/mcp-coda"

// newSelfUpdateCmd creates the Cobra command for updating the binary in place.
func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update mcp-coda to the latest version",
		Long: `Checks GitHub for the latest release of mcp-coda and, if a newer
version is available, replaces the current binary with it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return selfUpdate(cmd)
		},
	}
}

func selfUpdate(cmd *cobra.Command) error {
	version := rootCmd.Version
	if version == "" || version == "dev" {
		return fmt.Errorf("cannot self-update a development version (%q); install a released build first", version)
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found in repository %s", runtime.GOOS, runtime.GOARCH, githubRepoSlug)
	}

	if latest.LessOrEqual(version) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current version (%s) is the latest\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.New("could not locate executable path")
	}
	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version %s\n", latest.Version())
	return nil
}
