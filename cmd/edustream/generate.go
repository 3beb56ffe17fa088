// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Find or generate a course for a topic",
	Long: `Generate resolves a topic the same way a search does. A catalog course whose
title contains the topic is printed as is; otherwise the generative model
writes a new syllabus, which is printed with its generated id. Generated
courses are not persisted between runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("format", "yaml", "output format: yaml or json")
	generateCmd.Flags().Bool("force", false, "skip the catalog lookup and always generate")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	force, _ := cmd.Flags().GetBool("force")
	topic := strings.Join(args, " ")

	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.log.Sync()

	ctx := context.Background()
	if force {
		c, err := d.gen.Synthesize(ctx, topic)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Generated course %s\n", c.ID)
		return encode(os.Stdout, format, c)
	}

	res, err := d.gen.Resolve(ctx, topic)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Course %s (%s)\n", res.Course.ID, res.Source)
	return encode(os.Stdout, format, res.Course)
}
