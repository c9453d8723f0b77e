package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrbfedit/nrbfedit/nrbf"
)

var diffCmd = &cobra.Command{
	Use:   "diff <nrbf-file-a> <nrbf-file-b>",
	Short: "Compare two NRBF files field by field",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	a, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	b, err := loadDocument(args[1])
	if err != nil {
		return err
	}

	changes := a.Diff(b)
	if len(changes) == 0 {
		fmt.Fprintln(output, "no differences")
		return nil
	}

	for _, c := range changes {
		printChange(c)
	}
	return nil
}

func printChange(c nrbf.FieldChange) {
	switch c.Kind {
	case nrbf.ChangeModified:
		fmt.Fprintf(output, "~ %s: %s -> %s\n", c.Path, c.Before, c.After)
	case nrbf.ChangeAdded:
		fmt.Fprintf(output, "+ %s: %s\n", c.Path, c.After)
	case nrbf.ChangeRemoved:
		fmt.Fprintf(output, "- %s: %s\n", c.Path, c.Before)
	}
}
