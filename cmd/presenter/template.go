package main

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/imageio"
	"github.com/gogpu/presenter/template"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Manage saved style templates",
	}

	cmd.AddCommand(newTemplateListCmd(a))
	cmd.AddCommand(newTemplateSaveCmd(a))
	cmd.AddCommand(newTemplateDeleteCmd(a))
	cmd.AddCommand(newTemplateShowCmd(a))

	return cmd
}

type templateListOptions struct {
	json bool
}

func newTemplateListCmd(a *app) *cobra.Command {
	opts := &templateListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved templates, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			list := store.List()

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates saved.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), templateTable(list))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output templates as JSON")

	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func templateTable(list []template.Template) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "NAME", "MODE", "PAD", "RADIUS", "BORDER", "THUMB").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, tpl := range list {
		s := tpl.Settings
		thumb := "-"
		if data, err := tpl.ThumbPNG(); err == nil {
			thumb = humanize.Bytes(uint64(len(data)))
		}
		t.Row(
			strconv.Itoa(i+1),
			shortID(tpl.ID),
			tpl.Name,
			s.GradientMode.String(),
			strconv.Itoa(s.Padding),
			strconv.Itoa(s.CornerRadius),
			fmt.Sprintf("%dpx %.0f%%", s.BorderWidth, s.BorderOpacity*100),
			thumb,
		)
	}
	return t.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type templateSaveOptions struct {
	image string
	style styleFlags
}

func newTemplateSaveCmd(a *app) *cobra.Command {
	opts := &templateSaveOptions{}

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the configured style, with any flag overrides, as a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			s, _, err := opts.style.apply(cmd, a.cfg.StyleSettings())
			if err != nil {
				return err
			}

			var img image.Image
			if opts.image != "" {
				img, err = imageio.Load(cmd.Context(), opts.image)
				if err != nil {
					return err
				}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			tpl, err := template.New(name, s, img)
			if err != nil {
				return err
			}
			if err := store.Add(tpl); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q (%s)\n", tpl.Name, tpl.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.image, "image", "", "Image rendered into the thumbnail")
	opts.style.register(cmd)

	return cmd
}

func newTemplateDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			tpl, err := store.Find(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			if err := store.Delete(tpl.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %q (%s)\n", tpl.Name, tpl.ID)
			return nil
		},
	}
}

type templateShowOptions struct {
	thumb string
}

func newTemplateShowCmd(a *app) *cobra.Command {
	opts := &templateShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print a template's settings and optionally write its thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			tpl, err := store.Find(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}

			if opts.thumb != "" {
				data, err := tpl.ThumbPNG()
				if err != nil {
					return err
				}
				if err := os.WriteFile(opts.thumb, data, 0o644); err != nil {
					return err
				}
				presenter.Logger().Info("presenter: wrote thumbnail", "path", opts.thumb)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				ID       string                  `json:"id"`
				Name     string                  `json:"name"`
				Settings presenter.StyleSettings `json:"settings"`
			}{tpl.ID, tpl.Name, tpl.Settings})
		},
	}

	cmd.Flags().StringVarP(&opts.thumb, "thumb", "o", "", "Write the thumbnail PNG to this file")

	return cmd
}
