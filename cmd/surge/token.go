package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surge-http/surge/pkg/executor"
	"github.com/surge-http/surge/pkg/vars"
)

var (
	tokenEnv    string
	tokenSaveAs string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenEnv, "env", "e", "", "environment id or name")
	tokenCmd.Flags().StringVar(&tokenSaveAs, "save-as", "", "save the access token into the environment under this variable name")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token <requestId>",
	Short: "Acquire an OAuth2 access token for a request's oauth2 configuration",
	Long: `Runs the OAuth2 client-credentials flow against the token endpoint configured
on the request (or its collection) and prints the access token. With --save-as
the token is written into the selected environment for use as a {{variable}}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		collection, req := store.FindRequest(args[0])
		if req == nil {
			return fmt.Errorf("request %q not found in any collection", args[0])
		}

		env, err := selectEnvironment(store, tokenEnv)
		if err != nil {
			return err
		}
		merged := vars.Merge(dotenvVars(), collection.MergedVariables(env))

		auth := req.Auth
		if auth == nil {
			auth = collection.Auth
		}

		token, err := executor.FetchOAuth2Token(cmd.Context(), auth, merged)
		if err != nil {
			return err
		}

		if tokenSaveAs != "" {
			if env == nil {
				return fmt.Errorf("--save-as requires --env")
			}
			if env.Variables == nil {
				env.Variables = make(map[string]string)
			}
			env.Variables[tokenSaveAs] = token
			if err := store.SaveEnvironment(env); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to environment %q as {{%s}}\n", env.Name, tokenSaveAs)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
