package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <nrbf-file>",
	Short: "Display summary information about an NRBF file",
	Long:  `Display the stream header, object counts, and declared libraries of an NRBF file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	hdr := doc.Header()
	fmt.Fprintf(output, "File: %s\n", path)
	fmt.Fprintf(output, "Root object: %d\n", hdr.RootID)
	fmt.Fprintf(output, "Format version: %d.%d\n", hdr.MajorVersion, hdr.MinorVersion)
	fmt.Fprintf(output, "Records: %s\n", humanize.Comma(int64(len(doc.Order()))))
	fmt.Fprintf(output, "Classes: %s\n", humanize.Comma(int64(len(doc.Classes()))))
	fmt.Fprintf(output, "Strings: %s\n", humanize.Comma(int64(len(doc.Strings()))))

	libs := doc.Libraries()
	fmt.Fprintf(output, "Libraries: %d\n", len(libs))
	for _, lib := range libs {
		fmt.Fprintf(output, "  [%d] %s\n", lib.ID, lib.Name)
	}

	return nil
}
