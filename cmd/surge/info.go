package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show storage location, configuration, and usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		cfg := loadConfig(store)
		size, err := store.StorageSize()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("surge "+version))
		fmt.Fprintf(out, "Storage root:     %s\n", store.Root())
		fmt.Fprintf(out, "Storage size:     %s\n", humanize.Bytes(uint64(size)))
		fmt.Fprintf(out, "Collections:      %d\n", len(store.LoadCollections()))
		fmt.Fprintf(out, "Environments:     %d\n", len(store.LoadEnvironments()))
		fmt.Fprintf(out, "History entries:  %d (cap %d)\n", len(store.LoadHistory()), cfg.MaxHistorySize)
		fmt.Fprintf(out, "Default timeout:  %dms\n", cfg.DefaultTimeout)
		fmt.Fprintf(out, "Follow redirects: %v\n", cfg.FollowRedirects)
		fmt.Fprintf(out, "Validate SSL:     %v\n", cfg.ValidateSSL)
		if cfg.ProxyURL != "" {
			fmt.Fprintf(out, "Proxy:            %s\n", cfg.ProxyURL)
		}
		return nil
	},
}
