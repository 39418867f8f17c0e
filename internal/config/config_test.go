// file: internal/config/config_test.go
// version: 1.0.0
// guid: 3b4c5d6e-7f80-9102-1324-35465768798a

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfigDefaults(t *testing.T) {
	resetViper(t)
	InitConfig()

	assert.Equal(t, "https://www.goodreads.com", AppConfig.BaseURL)
	assert.Equal(t, 2, AppConfig.ShelfCountThreshold)
	assert.True(t, AppConfig.NeverReplaceAmazonID)
	assert.True(t, AppConfig.NeverReplaceISBN)
	assert.Equal(t, []string{"goodreads"}, AppConfig.ExtraTags)
	assert.False(t, AppConfig.DisableTitleAuthorSearch)
	assert.Equal(t, 30*time.Second, AppConfig.Timeout)
	assert.Equal(t, 1.0, AppConfig.RequestsPerSecond)
	assert.False(t, AppConfig.IsConfigured(), "no key means unconfigured")
}

func TestInitConfigAPIKey(t *testing.T) {
	resetViper(t)
	viper.Set("api_keys.goodreads", "secret")
	InitConfig()
	assert.Equal(t, "secret", AppConfig.APIKeys.Goodreads)
	assert.True(t, AppConfig.IsConfigured())
}

func TestInitConfigFlatKeyFallback(t *testing.T) {
	resetViper(t)
	viper.Set("goodreads_api_key", "flat")
	InitConfig()
	assert.Equal(t, "flat", AppConfig.APIKeys.Goodreads)
}

func TestInitConfigExtraTagsSplit(t *testing.T) {
	resetViper(t)
	viper.Set("extra_tags", "goodreads, fiction , ,audio")
	InitConfig()
	assert.Equal(t, []string{"goodreads", "fiction", "audio"}, AppConfig.ExtraTags)
}

func TestInitConfigClampsNegativeThreshold(t *testing.T) {
	resetViper(t)
	viper.Set("shelf_count_threshold", -5)
	InitConfig()
	assert.Equal(t, 0, AppConfig.ShelfCountThreshold)
}
