// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/edustream/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the courses in the catalog",
	Long: `Catalog prints the seed catalog (or the --seed-file override) as a table,
or as YAML or JSON with --format.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	catalogCmd.Flags().Bool("categories", false, "list browse categories instead of courses")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	categories, _ := cmd.Flags().GetBool("categories")

	if categories {
		if format == "table" {
			for _, c := range catalog.Categories {
				fmt.Println(c)
			}
			return nil
		}
		return encode(os.Stdout, format, catalog.Categories)
	}

	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.log.Sync()

	courses := d.store.All()
	if format != "table" {
		return encode(os.Stdout, format, courses)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLEVEL\tMODULES\tRATING")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.1f\n", c.ID, c.Title, c.Category, c.Level, len(c.Modules), c.Rating)
	}
	return tw.Flush()
}
