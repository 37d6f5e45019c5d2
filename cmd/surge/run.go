package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/surge-http/surge/pkg/executor"
	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/storage"
	"github.com/surge-http/surge/pkg/vars"
)

var (
	runEnv         string
	runFilter      string
	runCopy        bool
	runSaveHistory bool
)

func init() {
	runCmd.Flags().StringVarP(&runEnv, "env", "e", "", "environment id or name for variable substitution")
	runCmd.Flags().StringVar(&runFilter, "filter", "", "gjson path to extract from the response body")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "copy the response body to the clipboard")
	runCmd.Flags().BoolVar(&runSaveHistory, "save-history", true, "record the exchange in history")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <requestId>",
	Short: "Execute a stored request",
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

		env, err := selectEnvironment(store, runEnv)
		if err != nil {
			return err
		}

		merged := vars.Merge(dotenvVars(), collection.MergedVariables(env))

		// Requests without their own auth inherit the collection's.
		if req.Auth == nil {
			req.Auth = collection.Auth
		}

		cfg := loadConfig(store)
		resp, err := executor.New(cfg).Execute(req, merged)
		if err != nil {
			return err
		}

		if runSaveHistory {
			entry := model.HistoryEntry{
				ID:        uuid.NewString(),
				Request:   *req,
				Response:  *resp,
				Timestamp: time.Now(),
			}
			if err := store.AddToHistory(entry); err != nil {
				return err
			}
		}

		body := resp.Data
		if runFilter != "" {
			result := gjson.Get(resp.Data, runFilter)
			if !result.Exists() {
				return fmt.Errorf("filter %q matched nothing in the response body", runFilter)
			}
			body = result.String()
		}

		if runCopy {
			if err := clipboard.WriteAll(body); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to copy to clipboard: %v\n", err)
			}
		}

		if runFilter != "" {
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		}
		printResponse(cmd, resp)
		return nil
	},
}

// selectEnvironment resolves --env against the store; empty means none.
func selectEnvironment(store *storage.Store, idOrName string) (*model.Environment, error) {
	if idOrName == "" {
		return nil, nil
	}
	env := store.GetEnvironment(idOrName)
	if env == nil {
		return nil, fmt.Errorf("environment %q not found", idOrName)
	}
	return env, nil
}

// printResponse renders the response as markdown via glamour, falling back
// to the plain text form when rendering fails.
func printResponse(cmd *cobra.Command, resp *model.Response) {
	md := formatResponseMarkdown(resp)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return
	}
	out, err := renderer.Render(md)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

// formatResponseMarkdown builds a markdown view of the response: status
// line, headers, and the body pretty-printed when it is JSON.
func formatResponseMarkdown(resp *model.Response) string {
	var sb bytes.Buffer

	fmt.Fprintf(&sb, "**%d %s** (%dms, %d bytes)\n\n", resp.Status, resp.StatusText, resp.Time, resp.Size)

	sb.WriteString("Headers:\n\n")
	for key, value := range resp.Headers {
		fmt.Fprintf(&sb, "- `%s: %s`\n", key, value)
	}

	sb.WriteString("\n```\n")
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(resp.Data), "", "  "); err == nil {
		sb.Write(pretty.Bytes())
	} else {
		sb.WriteString(resp.Data)
	}
	sb.WriteString("\n```\n")

	return sb.String()
}
