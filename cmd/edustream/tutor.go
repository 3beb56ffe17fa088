// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/edustream/internal/app"
	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/pkg/types"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the AI tutor for a course",
	Long: `Tutor opens a course and reads questions from stdin, one per line, printing
each reply. The tutor knows the course title and its opening lesson. Enter
/quit or end input to leave.`,
	RunE: runTutor,
}

func init() {
	tutorCmd.Flags().String("course", "", "course id or part of its title (required)")
	_ = tutorCmd.MarkFlagRequired("course")

	rootCmd.AddCommand(tutorCmd)
}

func runTutor(cmd *cobra.Command, args []string) error {
	ref, _ := cmd.Flags().GetString("course")

	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.log.Sync()

	course, err := findCourse(d.store, ref)
	if err != nil {
		return err
	}

	a := app.New(d.store, d.gen, d.client, d.log)
	a.SelectCourse(course)
	return chat(context.Background(), a, os.Stdin, os.Stdout)
}

// findCourse matches ref against ids first, then titles.
func findCourse(store *catalog.Store, ref string) (types.Course, error) {
	if c, err := store.Get(ref); err == nil {
		return c, nil
	}
	if c, ok := store.FindByTitle(ref); ok {
		return c, nil
	}
	return types.Course{}, fmt.Errorf("%q: %w", ref, catalog.ErrCourseNotFound)
}

// chat runs the read-reply loop until /quit or end of input.
func chat(ctx context.Context, a *app.App, in io.Reader, out io.Writer) error {
	t := a.Tutor()
	if t == nil {
		return fmt.Errorf("no course is open")
	}
	if t.LessonContext != "" {
		fmt.Fprintf(out, "[%s / %s]\n", t.CourseTitle, t.LessonContext)
	}
	fmt.Fprintf(out, "tutor> %s\n", t.Messages[0].Content)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "/quit" {
			return nil
		}
		if !a.SubmitTutorMessage(ctx, line) {
			continue
		}
		msgs := a.Tutor().Messages
		fmt.Fprintf(out, "tutor> %s\n", msgs[len(msgs)-1].Content)
	}
}
