package main

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update surge to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		if version == "dev" {
			fmt.Fprintln(cmd.OutOrStdout(), "You are running a development build. Update is not supported.")
			return nil
		}

		latest, found, err := selfupdate.DetectLatest("surge-http/surge")
		if err != nil {
			return fmt.Errorf("failed to detect latest version: %w", err)
		}

		v, err := semver.Parse(version)
		if err != nil {
			return fmt.Errorf("failed to parse current version %q: %w", version, err)
		}

		if !found || latest.Version.LTE(v) {
			fmt.Fprintln(cmd.OutOrStdout(), "Current version is the latest.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Do you want to update to %s? (y/n): ", latest.Version)
		var input string
		fmt.Scanln(&input)
		if input != "y" {
			return nil
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}
		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			return fmt.Errorf("failed to update binary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version %s\n", latest.Version)
		return nil
	},
}
