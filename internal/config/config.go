// file: internal/config/config.go
// version: 1.0.0
// guid: 2a3b4c5d-6e7f-8091-0213-243546576879

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	APIKeys struct {
		Goodreads string
	}
	BaseURL                  string
	ShelfCountThreshold      int
	NeverReplaceAmazonID     bool
	NeverReplaceISBN         bool
	ExtraTags                []string
	DisableTitleAuthorSearch bool
	Timeout                  time.Duration
	RequestsPerSecond        float64
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("base_url", "https://www.goodreads.com")
	viper.SetDefault("shelf_count_threshold", 2)
	viper.SetDefault("never_replace_amazon_id", true)
	viper.SetDefault("never_replace_isbn", true)
	viper.SetDefault("extra_tags", "goodreads")
	viper.SetDefault("disable_title_author_search", false)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("requests_per_second", 1.0)

	AppConfig = Config{
		BaseURL:                  viper.GetString("base_url"),
		ShelfCountThreshold:      viper.GetInt("shelf_count_threshold"),
		NeverReplaceAmazonID:     viper.GetBool("never_replace_amazon_id"),
		NeverReplaceISBN:         viper.GetBool("never_replace_isbn"),
		ExtraTags:                splitTags(viper.GetString("extra_tags")),
		DisableTitleAuthorSearch: viper.GetBool("disable_title_author_search"),
		Timeout:                  viper.GetDuration("timeout"),
		RequestsPerSecond:        viper.GetFloat64("requests_per_second"),
	}

	// API Keys
	AppConfig.APIKeys.Goodreads = viper.GetString("api_keys.goodreads")
	if AppConfig.APIKeys.Goodreads == "" {
		AppConfig.APIKeys.Goodreads = viper.GetString("goodreads_api_key")
	}

	if AppConfig.ShelfCountThreshold < 0 {
		AppConfig.ShelfCountThreshold = 0
	}
	if AppConfig.Timeout <= 0 {
		AppConfig.Timeout = 30 * time.Second
	}
}

// IsConfigured reports whether an API key is present. Lookups are
// refused without one.
func (c *Config) IsConfigured() bool {
	return c.APIKeys.Goodreads != ""
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
