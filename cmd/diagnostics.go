// file: cmd/diagnostics.go
// version: 1.0.0
// guid: 8091a213-2435-4657-687a-8a9babcdcedf

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdfalk/goodreads-metadata/internal/config"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging helpers",
		Long:  "Diagnostic utilities for inspecting the effective configuration.",
	}

	configShowCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnosticsConfig()
		},
	}
)

func init() {
	diagnosticsCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

func runDiagnosticsConfig() error {
	cfg := config.AppConfig

	key := "(not set)"
	if cfg.APIKeys.Goodreads != "" {
		key = maskKey(cfg.APIKeys.Goodreads)
	}

	fmt.Printf("Goodreads API key:          %s\n", key)
	if cfg.BaseURL != "" {
		fmt.Printf("Base URL override:          %s\n", cfg.BaseURL)
	}
	fmt.Printf("Shelf count threshold:      %d\n", cfg.ShelfCountThreshold)
	fmt.Printf("Never replace Amazon ID:    %t\n", cfg.NeverReplaceAmazonID)
	fmt.Printf("Never replace ISBN:         %t\n", cfg.NeverReplaceISBN)
	fmt.Printf("Extra tags:                 %s\n", cfg.ExtraTags)
	fmt.Printf("Title/author search off:    %t\n", cfg.DisableTitleAuthorSearch)
	fmt.Printf("Request timeout:            %s\n", cfg.Timeout)
	fmt.Printf("Requests per second:        %.2f\n", cfg.RequestsPerSecond)
	fmt.Printf("Configured:                 %t\n", cfg.IsConfigured())
	return nil
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
