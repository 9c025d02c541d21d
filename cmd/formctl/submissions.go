// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
)

func newSubmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "submit <form-id> [input-id=value ...]",
		Short:   "Submit values for a form",
		Example: `  formctl submit 3f2a... name=Ann email=ann@example.com`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			sub, err := a.client().Submit(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(a.out, sub)
			}
			fmt.Fprintf(a.out, "Submitted %s\n", sub.ID)
			return nil
		},
	}
}

func parseValues(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid value %q (want input-id=value)", p)
		}
		data[key] = value
	}
	return data, nil
}

func newSubmissionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submissions <form-id>",
		Short: "List a form's submissions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			form, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			subs, err := c.ListSubmissions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(a.out, subs)
			}
			if len(subs) == 0 {
				fmt.Fprintln(a.out, "No submissions yet")
				return nil
			}

			formmodel.Canonicalize(form)
			header := table.Row{"Submitted"}
			for _, in := range form.Inputs {
				header = append(header, in.Title)
			}

			t := newTable(a.out)
			t.AppendHeader(header)
			for _, s := range subs {
				row := table.Row{humanize.Time(s.SubmittedAt)}
				for _, in := range form.Inputs {
					v := formatValue(s.Data[in.ID])
					if in.Type == models.InputPassword && v != "" {
						v = "********"
					}
					row = append(row, v)
				}
				t.AppendRow(row)
			}
			t.Render()
			return nil
		},
	}
}
