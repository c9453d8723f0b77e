package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <nrbf-file>",
	Short: "Print every addressable path and value in the document",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	for path := range doc.Traverse() {
		desc, err := doc.Describe(path)
		if err != nil {
			fmt.Fprintf(output, "%s: <error: %v>\n", path, err)
			continue
		}
		fmt.Fprintf(output, "%s = %s\n", path, desc)
	}
	return nil
}
