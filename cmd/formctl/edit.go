// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/formbuilder/builder"
	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
)

// edit loads a form into a builder, applies fn and saves when fn changed
// anything. The saved form is printed the same way show prints it.
func edit(cmd *cobra.Command, a *app, formID string, fn func(*builder.Controller) error) error {
	ctl, err := builder.Load(cmd.Context(), a.client(), formID)
	if err != nil {
		return err
	}
	if err := fn(ctl); err != nil {
		return err
	}

	form := ctl.Form()
	if ctl.Dirty() {
		saved, err := ctl.Save(cmd.Context())
		if err != nil {
			return err
		}
		form = *saved
	}

	if a.output == outputJSON {
		return writeJSON(a.out, form)
	}
	printForm(a, &form)
	return nil
}

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <form-id> <title>",
		Short: "Set a form's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				ctl.SetTitle(args[1])
				return nil
			})
		},
	}
}

func newAddSectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-section <form-id> <title>",
		Short: "Append a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				_, err := ctl.AddSection(args[1])
				return err
			})
		},
	}
}

func newRenameSectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-section <form-id> <section-id> <title>",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				return ctl.RenameSection(args[1], args[2])
			})
		},
	}
}

func newAddInputCmd(a *app) *cobra.Command {
	var spec formmodel.InputSpec

	cmd := &cobra.Command{
		Use:   "add-input <form-id>",
		Short: "Append an input to a section",
		Long: `Append an input to the end of a section. Without --section the input
goes into the form's first section.`,
		Example: `  formctl add-input 3f2a... --title Email --type email --section demo
  formctl add-input 3f2a... --title Name --required`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				if spec.Section != "" {
					if err := ctl.SelectSection(spec.Section); err != nil {
						return err
					}
				}
				_, err := ctl.AddInput(spec)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&spec.Title, "title", "", "Input title (required)")
	cmd.Flags().StringVar(&spec.Type, "type", models.InputText, "Input type")
	cmd.Flags().StringVar(&spec.Placeholder, "placeholder", "", "Placeholder text")
	cmd.Flags().StringVar(&spec.Section, "section", "", "Section id")
	cmd.Flags().BoolVar(&spec.Required, "required", false, "Require a value on submit")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return models.InputTypes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newDeleteInputCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-input <form-id> <input-id>",
		Short: "Remove an input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				if !ctl.DeleteInput(args[1]) {
					return fmt.Errorf("input %q not found", args[1])
				}
				return nil
			})
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <form-id> <input-id> <over-input-id>",
		Short: "Drop an input onto another, as the builder's drag and drop does",
		Long: `Move an input to the position of another. Moving onto an input in a
different section moves it into that section.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, a, args[0], func(ctl *builder.Controller) error {
				form := ctl.Form()
				for _, id := range args[1:] {
					if _, ok := formmodel.FindInput(&form, id); !ok {
						return fmt.Errorf("input %q not found", id)
					}
				}
				ctl.Reorder(args[1], args[2])
				return nil
			})
		},
	}
}
