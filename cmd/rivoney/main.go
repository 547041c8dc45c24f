// Package main provides the entry point for the Rivoney HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rivoney",
	Short: "Rivoney resume tailoring API server",
	Long:  "Rivoney stores versioned JSON Resumes, analyzes them against job descriptions, and folds answered gap questions back into the resume via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
