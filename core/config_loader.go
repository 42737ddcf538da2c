package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/smarty/mcinstall/contracts"
)

const ConfigFileName = "config.yaml"

// DefaultConfig places installations under the user's config directory and
// the catalog cache under the user's cache directory.
func DefaultConfig(userConfigDir, userCacheDir string) contracts.Config {
	return contracts.Config{
		DataDirectory:   filepath.Join(userConfigDir, "mcinstall"),
		CacheDirectory:  filepath.Join(userCacheDir, "mcinstall"),
		CacheExpiryDays: 5,
		MaxConcurrency:  16,
		ManifestURL:     contracts.DefaultManifestURL,
		AssetBaseURL:    DefaultAssetBaseURL,
	}
}

// ConfigLoader layers a YAML config file over the defaults and command-line
// flags over the file.
type ConfigLoader struct {
	storage  contracts.FileReader
	stderr   io.Writer
	defaults contracts.Config
}

func NewConfigLoader(storage contracts.FileReader, stderr io.Writer, defaults contracts.Config) *ConfigLoader {
	return &ConfigLoader{storage: storage, stderr: stderr, defaults: defaults}
}

func (this *ConfigLoader) LoadConfig(name string, args []string) (config contracts.Config, err error) {
	config = this.defaults
	if err = this.parseCLI(name, args, &config, this.stderr); err != nil {
		return contracts.Config{}, err
	}

	fromFile := this.defaults
	fromFile.ConfigPath = config.ConfigPath
	if fromFile.ConfigPath == "" {
		fromFile.DataDirectory = config.DataDirectory
	}
	if err = this.parseConfigFile(&fromFile); err != nil {
		return contracts.Config{}, err
	}

	config = fromFile
	if err = this.parseCLI(name, args, &config, io.Discard); err != nil {
		return contracts.Config{}, err
	}

	if config.OS, err = this.hostOS(config.HostOS); err != nil {
		return contracts.Config{}, err
	}
	if err = this.validate(config); err != nil {
		return contracts.Config{}, err
	}
	return config, nil
}

func (this *ConfigLoader) parseCLI(name string, args []string, config *contracts.Config, output io.Writer) error {
	flags := pflag.NewFlagSet("mcinstall "+name, pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&config.ConfigPath,
		"config",
		config.ConfigPath,
		"Path to a YAML config file (default <db-path>/"+ConfigFileName+").",
	)
	flags.StringVar(&config.DataDirectory,
		"db-path",
		config.DataDirectory,
		"Directory holding the installation database and installations.",
	)
	flags.StringVar(&config.CacheDirectory,
		"cache-path",
		config.CacheDirectory,
		"Directory holding the cached version manifest.",
	)
	flags.IntVar(&config.CacheExpiryDays,
		"cache-expiry-days",
		config.CacheExpiryDays,
		"Days before the cached version manifest is refreshed.",
	)
	flags.IntVarP(&config.MaxConcurrency,
		"concurrency",
		"j",
		config.MaxConcurrency,
		"Maximum number of concurrent downloads (0 for unbounded).",
	)
	flags.IntVar(&config.MaxRetry,
		"max-retry",
		config.MaxRetry,
		"HTTP max retry for transient failures.",
	)
	flags.StringVar(&config.HostOS,
		"os",
		config.HostOS,
		"Host operating system used to select native libraries (osx, linux, windows).",
	)
	flags.BoolVar(&config.SkipVerified,
		"skip-verified",
		config.SkipVerified,
		"Skip files already present with the expected size and digest.",
	)
	flags.StringVar(&config.ManifestURL,
		"manifest-url",
		config.ManifestURL,
		"Address of the version manifest.",
	)
	flags.StringVar(&config.AssetBaseURL,
		"asset-base-url",
		config.AssetBaseURL,
		"Base address of the asset object store.",
	)
	flags.BoolVarP(&config.Verbose,
		"verbose",
		"v",
		config.Verbose,
		"Log every file as it is checked.",
	)
	if name == "versions" {
		flags.StringSliceVar(&config.ReleaseTypes,
			"type",
			config.ReleaseTypes,
			"Only list versions of these release types (release, snapshot, old_beta, old_alpha).",
		)
	}
	flags.Usage = func() {
		_, _ = fmt.Fprintf(output, "Usage of mcinstall %s:\n", name)
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		_, _ = fmt.Fprintln(output, err)
		flags.Usage()
	}
	if err != nil {
		return err
	}
	config.Arguments = flags.Args()
	return nil
}

func (this *ConfigLoader) parseConfigFile(config *contracts.Config) error {
	path := config.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(config.DataDirectory, ConfigFileName)
	}

	raw, err := this.storage.ReadFile(path)
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	if err = yaml.Unmarshal(raw, config); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

func (this *ConfigLoader) hostOS(value string) (contracts.OSName, error) {
	if value == "" {
		return HostOS()
	}
	return contracts.ParseOSName(value)
}

func (this *ConfigLoader) validate(config contracts.Config) error {
	if config.MaxRetry < 0 {
		return maxRetryErr
	}
	if config.CacheExpiryDays < 0 {
		return cacheExpiryErr
	}
	if config.DataDirectory == "" {
		return blankDataDirectoryErr
	}
	if config.CacheDirectory == "" {
		return blankCacheDirectoryErr
	}
	for _, kind := range config.ReleaseTypes {
		switch contracts.ReleaseType(kind) {
		case contracts.Release, contracts.Snapshot, contracts.OldBeta, contracts.OldAlpha:
		default:
			return errors.Wrapf(releaseTypeErr, "%q", kind)
		}
	}
	return nil
}

var (
	maxRetryErr            = errors.New("max-retry must not be negative")
	cacheExpiryErr         = errors.New("cache-expiry-days must not be negative")
	blankDataDirectoryErr  = errors.New("db-path must not be blank")
	blankCacheDirectoryErr = errors.New("cache-path must not be blank")
	releaseTypeErr         = errors.New("unknown release type")
)
