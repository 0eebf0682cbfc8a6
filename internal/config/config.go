// file: internal/config/config.go
// version: 1.1.0
// guid: 4f5a6b7c-8d9e-0f1a-2b3c-4d5e6f7a8b9c

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatasetPath    string        // local title dump file; downloaded into CacheDir when empty
	CacheDir       string        // where downloaded dumps live
	TopK           int           // results per query
	Kernel         string        // "table", "two-row", or "lithammer"
	ResultCacheTTL time.Duration // how long the server memoizes query results
	WatchDataset   bool          // reload the snapshot when the dump file changes
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	viper.SetDefault("top_k", 10)
	viper.SetDefault("kernel", "two-row")
	viper.SetDefault("result_cache_ttl", "5m")
	viper.SetDefault("watch_dataset", true)

	AppConfig = Config{
		DatasetPath:    viper.GetString("dataset_path"),
		CacheDir:       viper.GetString("cache_dir"),
		TopK:           viper.GetInt("top_k"),
		Kernel:         viper.GetString("kernel"),
		ResultCacheTTL: viper.GetDuration("result_cache_ttl"),
		WatchDataset:   viper.GetBool("watch_dataset"),
	}

	if AppConfig.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		AppConfig.CacheDir = filepath.Join(home, ".booksearch")
	}
	if AppConfig.TopK <= 0 {
		AppConfig.TopK = 10
	}
	if AppConfig.ResultCacheTTL <= 0 {
		AppConfig.ResultCacheTTL = 5 * time.Minute
	}
}

// DefaultDatasetPath returns the dataset location: the configured path
// when set, otherwise the cached download location.
func (c *Config) DefaultDatasetPath(dumpFilename string) string {
	if c.DatasetPath != "" {
		return c.DatasetPath
	}
	return filepath.Join(c.CacheDir, dumpFilename)
}
