// cmd/tools/catalog-tool/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cloud-api-console/pkg/registry"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var catalogPath string

	root := &cobra.Command{
		Use:           "catalog-tool",
		Short:         "Inspect and edit the API test lab catalog",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "path", "", "catalog JSON file (built-in catalog when empty or missing)")

	root.AddCommand(
		newListCmd(&catalogPath),
		newValidateCmd(&catalogPath),
		newAddCmd(&catalogPath),
		newExportCmd(&catalogPath),
	)
	return root
}

func newListCmd(path *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards, optionally for one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := registry.LoadOrBuiltin(*path)
			if err != nil {
				return err
			}
			return printCards(cmd.OutOrStdout(), c.Filter(registry.Category(category)))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "MAPS, AI or DATA")
	return cmd
}

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := registry.LoadOrBuiltin(*path)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog validation passed. Found %d cards.\n", len(c.Cards))
			return nil
		},
	}
}

func newAddCmd(path *string) *cobra.Command {
	var card registry.Card
	var category, inputType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to the catalog file",
		Example: `  catalog-tool add --path configs/catalog.json --id vertex --displayName "Vertex AI API" \
      --description "Managed model endpoints." --category AI --taskType simulate-api --defaultInput "List endpoints"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if *path == "" {
				return fmt.Errorf("--path is required for add")
			}
			card.Category = registry.Category(category)
			card.InputType = registry.InputType(inputType)

			c, err := registry.LoadOrBuiltin(*path)
			if err != nil {
				return err
			}
			if err := c.Add(card); err != nil {
				return fmt.Errorf("error adding card: %w", err)
			}
			if err := c.Save(*path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card: %s\n", card.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&card.ID, "id", "", "card id (e.g. solar)")
	f.StringVar(&card.DisplayName, "displayName", "", "display name")
	f.StringVar(&card.Description, "description", "", "short description")
	f.StringVar(&category, "category", "", "MAPS, AI or DATA")
	f.StringVar(&card.TaskType, "taskType", registry.TaskSimulateAPI, "task the card runs")
	f.StringVar(&card.SimulatedAPI, "simulatedApi", "", "API name the model acts as (defaults to displayName)")
	f.StringVar(&inputType, "inputType", string(registry.InputText), "text or image")
	f.StringVar(&card.DefaultInput, "defaultInput", "", "input used when the caller sends none")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("displayName")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newExportCmd(path *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the effective catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := registry.LoadOrBuiltin(*path)
			if err != nil {
				return err
			}
			if out != "" {
				if err := c.Save(out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", len(c.Cards), out)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout when empty)")
	return cmd
}

func printCards(w io.Writer, cards []registry.Card) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tTASK\tNAME")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Category, c.TaskType, c.DisplayName)
	}
	return tw.Flush()
}
