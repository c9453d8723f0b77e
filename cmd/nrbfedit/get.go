package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <nrbf-file> <path>",
	Short: "Print the value at a path",
	Long:  `Resolve a dot-joined path ("Root.Items[2].Name") and print its value.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	desc, err := doc.Describe(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[1], err)
	}

	fmt.Fprintln(output, desc)
	return nil
}
