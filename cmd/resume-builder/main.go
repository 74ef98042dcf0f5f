// Package main provides the entry point for the resume builder server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-builder",
	Short: "Smart Resume Builder server",
	Long:  "Serves the resume builder UI, stores submitted resumes and proxies AI improvement suggestions.",
	RunE:  runServe,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
