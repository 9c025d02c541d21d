// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/formbuilder/builder"
	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forms, err := a.client().List(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(a.out, forms)
			}
			if len(forms) == 0 {
				fmt.Fprintln(a.out, "No forms created yet")
				return nil
			}

			t := newTable(a.out)
			t.AppendHeader(table.Row{"ID", "Title", "Inputs", "Submissions", "Updated"})
			for _, f := range forms {
				t.AppendRow(table.Row{f.ID, f.Title, len(f.Inputs), f.SubmissionCount, humanize.Time(f.UpdatedAt)})
			}
			t.Render()
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id>",
		Short: "Show a form's sections and inputs in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			formmodel.Canonicalize(form)
			if a.output == outputJSON {
				return writeJSON(a.out, form)
			}
			printForm(a, form)
			return nil
		},
	}
}

func printForm(a *app, form *models.Form) {
	fmt.Fprintf(a.out, "%s (%s)\n", form.Title, form.ID)
	fmt.Fprintf(a.out, "%d/%d inputs, updated %s\n", len(form.Inputs), models.MaxInputs, humanize.Time(form.UpdatedAt))

	t := newTable(a.out)
	t.AppendHeader(table.Row{"Section", "#", "Input ID", "Type", "Title", "Placeholder", "Required"})
	for _, s := range formmodel.OrderedSections(form) {
		inputs := formmodel.SectionInputs(form, s.ID)
		if len(inputs) == 0 {
			t.AppendRow(table.Row{s.Title + " [" + s.ID + "]", "", "", "", "(empty)", "", ""})
			continue
		}
		for i, in := range inputs {
			label := ""
			if i == 0 {
				label = s.Title + " [" + s.ID + "]"
			}
			t.AppendRow(table.Row{label, i + 1, in.ID, in.Type, in.Title, in.Placeholder, yesNo(in.Required)})
		}
	}
	t.Render()
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create [title]",
		Short: "Create an empty form with the default section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := builder.New(a.client())
			if len(args) == 1 {
				ctl.SetTitle(args[0])
			}
			form, err := ctl.Save(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(a.out, form)
			}
			fmt.Fprintf(a.out, "Created form %s\n", form.ID)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted form %s\n", args[0])
			return nil
		},
	}
}
