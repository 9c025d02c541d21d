// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/formbuilder/client"
)

const (
	defaultServer = "http://localhost:5000"
	serverEnv     = "FORMCTL_SERVER"
)

// app carries the global flags into every subcommand.
type app struct {
	server  string
	timeout time.Duration
	output  string
	out     io.Writer
}

func (a *app) client() *client.Client {
	return client.New(client.Config{BaseURL: a.server, Timeout: a.timeout})
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	server := os.Getenv(serverEnv)
	if server == "" {
		server = defaultServer
	}

	rootCmd := &cobra.Command{
		Use:   "formctl",
		Short: "Build forms and read submissions from the command line",
		Long: `formctl talks to a running form builder server over its JSON API.

Every editing command loads the form, applies one change and saves it,
so the same validation rules apply as in the browser builder.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.output {
			case outputText, outputJSON:
				return nil
			default:
				return fmt.Errorf("invalid output format %q (use text or json)", a.output)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&a.server, "server", "s", server, "Form builder server URL (env "+serverEnv+")")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "Output format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{outputText, outputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newDeleteCmd(a),
		newTitleCmd(a),
		newAddSectionCmd(a),
		newRenameSectionCmd(a),
		newAddInputCmd(a),
		newDeleteInputCmd(a),
		newMoveCmd(a),
		newSubmitCmd(a),
		newSubmissionsCmd(a),
	)

	return rootCmd
}
