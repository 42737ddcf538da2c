package contracts

import (
	"path/filepath"
	"time"
)

type Config struct {
	DataDirectory   string `yaml:"data_directory"`
	CacheDirectory  string `yaml:"cache_directory"`
	CacheExpiryDays int    `yaml:"cache_expiry_days"`
	MaxConcurrency  int    `yaml:"max_concurrency"`
	MaxRetry        int    `yaml:"max_retry"`
	SkipVerified    bool   `yaml:"skip_verified"`
	ManifestURL     string `yaml:"manifest_url"`
	AssetBaseURL    string `yaml:"asset_base_url"`
	HostOS          string `yaml:"host_os"`
	Verbose         bool   `yaml:"verbose"`

	ConfigPath   string   `yaml:"-"`
	ReleaseTypes []string `yaml:"-"`
	Arguments    []string `yaml:"-"`
	OS           OSName   `yaml:"-"`
}

func (this Config) CacheExpiry() time.Duration {
	return time.Duration(this.CacheExpiryDays) * 24 * time.Hour
}

func (this Config) DatabasePath() string {
	return filepath.Join(this.DataDirectory, "installations.json")
}

func (this Config) InstallationRoot() string {
	return filepath.Join(this.DataDirectory, "installations")
}
