package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/use-agent/clubfeed/prereq"
)

var prereqsOpts struct {
	format string
	course string
}

func init() {
	f := prereqsCmd.Flags()
	f.StringVarP(&prereqsOpts.format, "format", "f", prereq.FormatJSON, "Output format: json or yaml.")
	f.StringVarP(&prereqsOpts.course, "course", "c", "", "Print only this course, e.g. \"CSC 210\".")
	rootCmd.AddCommand(prereqsCmd)
}

var prereqsCmd = &cobra.Command{
	Use:   "prereqs <courses.csv> [--format json|yaml] [--course <code>]",
	Short: "Extracts each course's prerequisites from a course export CSV.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := prereq.ReadFile(args[0])
		if err != nil {
			return err
		}

		if prereqsOpts.course == "" {
			return prereq.Write(cmd.OutOrStdout(), m, prereqsOpts.format)
		}

		code, reqs, err := m.Lookup(prereqsOpts.course)
		if errors.Is(err, prereq.ErrNotFound) {
			return fmt.Errorf("%w: %s", err, prereqsOpts.course)
		}
		if err != nil {
			return err
		}
		return prereq.Write(cmd.OutOrStdout(), prereq.Entry{Course: code, Prerequisites: reqs}, prereqsOpts.format)
	},
}
