package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCategoriesList(cmd)
	addCategoriesAdd(cmd)
	addCategoriesRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addCategoriesList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			cats := coord.Categories()
			out := cmd.OutOrStdout()
			if len(cats) == 0 {
				fmt.Fprintln(out, "no categories")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintf(out, "%s  %-20s %s on %s\n", c.ID, c.Name, c.TextColor, c.Color)
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addCategoriesAdd(parent *cobra.Command) {
	var (
		color     string
		textColor string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Example: `
tempo-cli categories add Work --color "#3b82f6"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			created, err := coord.CreateCategory(cmd.Context(), args[0], color, textColor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s, text %s)\n",
				created.Name, created.Color, created.TextColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "#3b82f6", "background color (hex)")
	cmd.Flags().StringVar(&textColor, "text-color", "", "text color (hex, derived from the background when omitted)")

	parent.AddCommand(cmd)
}

func addCategoriesRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category and uncategorize its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			if err := coord.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted category %s\n", args[0])
			return nil
		},
	}

	parent.AddCommand(cmd)
}
