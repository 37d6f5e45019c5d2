package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surge-http/surge/pkg/executor"
	"github.com/surge-http/surge/pkg/vars"
)

var (
	benchEnv         string
	benchRequests    int
	benchConcurrency int
	benchRPS         int
)

func init() {
	benchCmd.Flags().StringVarP(&benchEnv, "env", "e", "", "environment id or name")
	benchCmd.Flags().IntVarP(&benchRequests, "requests", "n", 100, "total number of requests")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 5, "parallel workers")
	benchCmd.Flags().IntVar(&benchRPS, "rps", 0, "rate limit in requests per second (0 = unlimited)")
	rootCmd.AddCommand(benchCmd)
}

var benchCmd = &cobra.Command{
	Use:   "bench <requestId>",
	Short: "Load-test a stored request and report latency percentiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		collection, req := store.FindRequest(args[0])
		if req == nil {
			return fmt.Errorf("request %q not found in any collection", args[0])
		}

		env, err := selectEnvironment(store, benchEnv)
		if err != nil {
			return err
		}
		merged := vars.Merge(dotenvVars(), collection.MergedVariables(env))
		if req.Auth == nil {
			req.Auth = collection.Auth
		}

		result, err := executor.New(loadConfig(store)).Bench(cmd.Context(), req, merged, executor.BenchParams{
			Requests:    benchRequests,
			Concurrency: benchConcurrency,
			RPS:         benchRPS,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), result.Format())
		return nil
	},
}
