// Package main provides the entry point for the DocWriter report server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docwriter",
	Short: "DocWriter report generation server",
	Long:  "DocWriter turns tabular application data and JSON report templates into editable reports, exportable as PDF or DOCX, with optional AI enhancement of section content.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
