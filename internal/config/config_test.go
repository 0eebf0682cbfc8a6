// file: internal/config/config_test.go
// version: 1.1.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestInitConfig tests configuration initialization with defaults
func TestInitConfig(t *testing.T) {
	viper.Reset()

	InitConfig()

	if AppConfig.TopK != 10 {
		t.Errorf("Expected top_k default 10, got %d", AppConfig.TopK)
	}
	if AppConfig.Kernel != "two-row" {
		t.Errorf("Expected kernel default 'two-row', got '%s'", AppConfig.Kernel)
	}
	if AppConfig.ResultCacheTTL != 5*time.Minute {
		t.Errorf("Expected result_cache_ttl default 5m, got %v", AppConfig.ResultCacheTTL)
	}
	if !AppConfig.WatchDataset {
		t.Error("Expected watch_dataset to be true by default")
	}
	if AppConfig.CacheDir == "" {
		t.Error("Expected a non-empty cache dir default")
	}
}

func TestInitConfigOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("top_k", 25)
	viper.Set("kernel", "lithammer")
	viper.Set("dataset_path", "/tmp/titles.txt")
	viper.Set("cache_dir", "/tmp/bs-cache")

	InitConfig()

	if AppConfig.TopK != 25 {
		t.Errorf("Expected top_k 25, got %d", AppConfig.TopK)
	}
	if AppConfig.Kernel != "lithammer" {
		t.Errorf("Expected kernel 'lithammer', got '%s'", AppConfig.Kernel)
	}
	if AppConfig.DatasetPath != "/tmp/titles.txt" {
		t.Errorf("Expected dataset_path override, got '%s'", AppConfig.DatasetPath)
	}
	if AppConfig.CacheDir != "/tmp/bs-cache" {
		t.Errorf("Expected cache_dir override, got '%s'", AppConfig.CacheDir)
	}
}

func TestDefaultDatasetPath(t *testing.T) {
	c := &Config{CacheDir: "/tmp/bs-cache"}
	got := c.DefaultDatasetPath("dump.txt.gz")
	want := filepath.Join("/tmp/bs-cache", "dump.txt.gz")
	if got != want {
		t.Errorf("DefaultDatasetPath = %q, want %q", got, want)
	}

	c.DatasetPath = "/data/titles.txt"
	if c.DefaultDatasetPath("dump.txt.gz") != "/data/titles.txt" {
		t.Error("explicit dataset_path should win over cache dir")
	}
}
