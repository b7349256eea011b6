package main

import (
	"fmt"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(renameCategoryCmd(a))
	cmd.AddCommand(deleteCategoryCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			categories, err := client.Categories.List(cmd.Context())
			if err != nil {
				return err
			}

			return writeCategories(a, categories)
		},
	}
}

func writeCategories(a *app, categories []*fintrack.Category) error {
	if len(categories) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No categories found. Use 'fintrack categories add' to create one."))
		return nil
	}

	w := newTable(a.out)
	header(w, "ID", "Name")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
	}
	return w.Flush()
}

// loadCategories fetches the category list that a mutation then updates in place
func loadCategories(cmd *cobra.Command, client *fintrack.Client) (*fintrack.Collection[fintrack.Category], error) {
	categories, err := client.Categories.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	return fintrack.NewCategoryCollection(categories), nil
}

func addCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadCategories(cmd, client)
			if err != nil {
				return err
			}

			category, err := client.Categories.Create(cmd.Context(), &fintrack.CategoryParams{Name: args[0]})
			if err != nil {
				return err
			}

			list.Append(category)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Created category %q (id %d)", category.Name, category.ID)))
			return writeCategories(a, list.Items())
		},
	}
}

func renameCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadCategories(cmd, client)
			if err != nil {
				return err
			}

			category, err := client.Categories.Update(cmd.Context(), id, &fintrack.CategoryParams{Name: args[1]})
			if err != nil {
				return err
			}

			list.Replace(category)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Renamed category %d to %q", category.ID, category.Name)))
			return writeCategories(a, list.Items())
		},
	}
}

func deleteCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadCategories(cmd, client)
			if err != nil {
				return err
			}

			if err := client.Categories.Delete(cmd.Context(), id); err != nil {
				return err
			}

			list.Remove(id)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return writeCategories(a, list.Items())
		},
	}
}
