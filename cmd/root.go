// file: cmd/root.go
// version: 1.0.0
// guid: 6e7f8091-0213-2435-4657-68798a9bacbd

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jdfalk/goodreads-metadata/internal/config"
	"github.com/jdfalk/goodreads-metadata/internal/covers"
	"github.com/jdfalk/goodreads-metadata/internal/goodreads"
	"github.com/jdfalk/goodreads-metadata/internal/metadata"
	"github.com/jdfalk/goodreads-metadata/internal/server"
)

var cfgFile string
var apiKey string
var shelfThreshold int
var extraTags string
var disableSearch bool

// coverStore lives for the process so a cover resolution after an
// identify in the same run hits the cache.
var coverStore = covers.NewStore()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goodreads-metadata",
	Short: "Look up book metadata and covers from Goodreads",
	Long: `Goodreads Metadata resolves books by ISBN, ASIN, Goodreads id or
title/author search, downloads the canonical record from the Goodreads
API, and maps it into a generic metadata shape for cataloguing tools.`,
}

// identifyCmd represents the identify command
var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify a book and print its metadata",
	Long:  `Resolve a book from identifiers or a title/author search and print the downloaded metadata.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newSource()
		if !src.IsConfigured() {
			return fmt.Errorf("goodreads API key not configured (set api_keys.goodreads)")
		}

		req := metadata.Request{
			Title:       mustString(cmd, "title"),
			Identifiers: identifierFlags(cmd),
		}
		if author := mustString(cmd, "author"); author != "" {
			req.Authors = []string{author}
		}
		if req.Title == "" && len(req.Identifiers) == 0 {
			return fmt.Errorf("nothing to identify: pass --isbn, --asin, --goodreads or --title")
		}

		var results []*metadata.Metadata
		err := src.Identify(cmd.Context(), req, func(mi *metadata.Metadata) {
			results = append(results, mi)
		})
		if err != nil {
			return fmt.Errorf("identify failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No match found")
			return nil
		}

		format := mustString(cmd, "format")
		return printMetadata(results[0], format)
	},
}

// coverCmd represents the cover command
var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Download a book's cover image",
	Long:  `Resolve the cover URL for a book (identifying it first if needed) and download the image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newSource()
		identifiers := identifierFlags(cmd)
		if len(identifiers) == 0 {
			return fmt.Errorf("pass --isbn, --asin or --goodreads")
		}

		url := coverStore.CachedURL(identifiers)
		if url == "" {
			fmt.Println("No cached cover found, running identify")
			if !src.IsConfigured() {
				return fmt.Errorf("goodreads API key not configured (set api_keys.goodreads)")
			}
			err := src.Identify(cmd.Context(), metadata.Request{Identifiers: identifiers}, func(*metadata.Metadata) {})
			if err != nil {
				return fmt.Errorf("identify failed: %w", err)
			}
			url = coverStore.CachedURL(identifiers)
		}
		if url == "" {
			return fmt.Errorf("could not resolve a cover for the given identifiers")
		}

		// Abort check sits between resolution and download.
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		fmt.Printf("Downloading cover from: %s\n", url)
		dl, err := covers.Open(cmd.Context(), url, config.AppConfig.Timeout)
		if err != nil {
			return fmt.Errorf("cover download failed: %w", err)
		}
		defer dl.Body.Close()

		output := mustString(cmd, "output")
		if output == "" {
			output = "cover" + dl.Extension
		} else if filepath.Ext(output) == "" {
			output += dl.Extension
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()

		bar := progressbar.DefaultBytes(dl.ContentLength, "downloading")
		if _, err := io.Copy(io.MultiWriter(f, bar), dl.Body); err != nil {
			os.Remove(output)
			return fmt.Errorf("failed to write cover: %w", err)
		}
		fmt.Printf("Cover saved to: %s\n", output)
		return nil
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve identify and cover lookups over HTTP",
	Long:  `Start an HTTP server exposing /identify and /cover as JSON endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newSource()
		srv := server.NewServer(src)
		cfg := server.GetDefaultServerConfig()

		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		fmt.Printf("Starting metadata server on %s:%s\n", cfg.Host, cfg.Port)
		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.goodreads-metadata.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Goodreads API key")
	rootCmd.PersistentFlags().IntVar(&shelfThreshold, "shelf-threshold", 2, "minimum shelf count for a shelf to become a tag")
	rootCmd.PersistentFlags().StringVar(&extraTags, "extra-tags", "goodreads", "comma-separated tags added to every result")
	rootCmd.PersistentFlags().BoolVar(&disableSearch, "disable-title-search", false, "only identify books that carry identifiers")

	viper.BindPFlag("api_keys.goodreads", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("shelf_count_threshold", rootCmd.PersistentFlags().Lookup("shelf-threshold"))
	viper.BindPFlag("extra_tags", rootCmd.PersistentFlags().Lookup("extra-tags"))
	viper.BindPFlag("disable_title_author_search", rootCmd.PersistentFlags().Lookup("disable-title-search"))

	for _, c := range []*cobra.Command{identifyCmd, coverCmd} {
		c.Flags().String("isbn", "", "ISBN-10 or ISBN-13")
		c.Flags().String("asin", "", "Amazon ASIN")
		c.Flags().String("goodreads", "", "native Goodreads book id")
	}
	identifyCmd.Flags().String("title", "", "book title for fuzzy search")
	identifyCmd.Flags().String("author", "", "author name for fuzzy search")
	identifyCmd.Flags().String("format", "text", "output format: text, json or yaml")
	coverCmd.Flags().String("output", "", "output file (extension inferred from content type)")

	serveCmd.Flags().String("port", "8080", "port to listen on")
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")

	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(coverCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".goodreads-metadata")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}

// newSource builds the metadata source from the effective configuration.
func newSource() *metadata.Source {
	cfg := config.AppConfig
	var client *goodreads.Client
	if cfg.BaseURL != "" && cfg.BaseURL != goodreads.DefaultBaseURL {
		client = goodreads.NewClientWithBaseURL(cfg.APIKeys.Goodreads, cfg.BaseURL)
	} else {
		client = goodreads.NewClient(cfg.APIKeys.Goodreads, cfg.Timeout, cfg.RequestsPerSecond)
	}
	return metadata.NewSource(client, coverStore, metadata.Options{
		ShelfCountThreshold:      cfg.ShelfCountThreshold,
		DisableTitleAuthorSearch: cfg.DisableTitleAuthorSearch,
		NeverReplaceAmazonID:     cfg.NeverReplaceAmazonID,
		NeverReplaceISBN:         cfg.NeverReplaceISBN,
		ExtraTags:                cfg.ExtraTags,
	})
}

func identifierFlags(cmd *cobra.Command) map[string]string {
	identifiers := map[string]string{}
	if v := mustString(cmd, "isbn"); v != "" {
		identifiers["isbn"] = v
	}
	if v := mustString(cmd, "asin"); v != "" {
		identifiers["amazon"] = v
	}
	if v := mustString(cmd, "goodreads"); v != "" {
		identifiers["goodreads"] = v
	}
	return identifiers
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func printMetadata(mi *metadata.Metadata, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(mi, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(mi)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "text":
		fmt.Printf("Title:    %s\n", mi.Title)
		for _, a := range mi.Authors {
			fmt.Printf("Author:   %s\n", a)
		}
		for scheme, value := range mi.Identifiers {
			fmt.Printf("ID:       %s:%s\n", scheme, value)
		}
		if mi.Publisher != "" {
			fmt.Printf("Publisher: %s\n", mi.Publisher)
		}
		if mi.Series != "" {
			fmt.Printf("Series:   %s #%g\n", mi.Series, mi.SeriesIndex)
		}
		if mi.Rating > 0 {
			fmt.Printf("Rating:   %.2f\n", mi.Rating)
		}
		if mi.PubDate != nil {
			fmt.Printf("Published: %s\n", mi.PubDate.Format("2006-01-02"))
		}
		if len(mi.Tags) > 0 {
			fmt.Printf("Tags:     %v\n", mi.Tags)
		}
		if mi.CoverURL != "" {
			fmt.Printf("Cover:    %s\n", mi.CoverURL)
		}
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	return nil
}
