package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default <collectionId>.json)")
	envsCmd.AddCommand(envsImportCmd)
	rootCmd.AddCommand(listCmd, importCmd, exportCmd, envsCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections and their requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		collections := store.LoadCollections()
		if len(collections) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No collections found. Use 'surge import <file>' to add one.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, c := range collections {
			fmt.Fprintln(out, titleStyle.Render(c.Name), dimStyle.Render("("+c.ID+")"))
			if c.Description != "" {
				fmt.Fprintln(out, " ", dimStyle.Render(c.Description))
			}
			for _, req := range c.Requests {
				fmt.Fprintf(out, "  %s %s  %s\n",
					methodStyle.Render(req.Method),
					req.Name,
					dimStyle.Render(req.ID))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a collection from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		c, err := store.ImportCollection(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s (%d requests)\n", c.Name, c.ID, len(c.Requests))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <collectionId>",
	Short: "Export a collection to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		outPath := exportOutput
		if outPath == "" {
			outPath = args[0] + ".json"
		}
		if err := store.ExportCollection(args[0], outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported collection %s to %s\n", args[0], outPath)
		return nil
	},
}

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List environments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		environments := store.LoadEnvironments()
		if len(environments) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No environments found.")
			return nil
		}
		for _, env := range environments {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d variables)\n",
				titleStyle.Render(env.Name), dimStyle.Render(env.ID), len(env.Variables))
		}
		return nil
	},
}

var envsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an environment from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		env, err := store.ImportEnvironment(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported environment %q as %s (%d variables)\n",
			env.Name, env.ID, len(env.Variables))
		return nil
	},
}
