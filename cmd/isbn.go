// file: cmd/isbn.go
// version: 1.0.0
// guid: 7f809102-1324-3546-5768-798a9bacbdce

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdfalk/goodreads-metadata/internal/isbn"
)

var (
	isbnCmd = &cobra.Command{
		Use:   "isbn",
		Short: "ISBN validation and conversion helpers",
	}

	isbnCheckCmd = &cobra.Command{
		Use:   "check <isbn>",
		Short: "Validate an ISBN-10 or ISBN-13 checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stripped := isbn.Strip(args[0])
			if isbn.IsValid(stripped) {
				fmt.Printf("%s is a valid ISBN-%d\n", stripped, len(stripped))
				return nil
			}
			return fmt.Errorf("%s is not a valid ISBN", args[0])
		},
	}

	isbnConvertCmd = &cobra.Command{
		Use:   "convert <isbn>",
		Short: "Convert between ISBN-10 and ISBN-13",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converted, err := isbn.Convert(args[0])
			if err != nil {
				return fmt.Errorf("cannot convert %s: %w", args[0], err)
			}
			fmt.Println(converted)
			return nil
		},
	}
)

func init() {
	isbnCmd.AddCommand(isbnCheckCmd)
	isbnCmd.AddCommand(isbnConvertCmd)
	rootCmd.AddCommand(isbnCmd)
}
