package main

import (
	"github.com/sirupsen/logrus"

	"github.com/smarty/mcinstall/contracts"
	"github.com/smarty/mcinstall/core"
	"github.com/smarty/mcinstall/shell"
)

type services struct {
	disk      *shell.DiskFileSystem
	cache     *core.CatalogCache
	operation *core.InstallOperation
}

func newServices(config contracts.Config, logger logrus.FieldLogger) services {
	disk := shell.NewDiskFileSystem()
	client := shell.NewHTTPClient()
	fetcher := core.NewRetryFetcher(
		shell.NewHTTPFetcher(client, shell.WithUserAgent("mcinstall/"+ldflagsSoftwareVersion)),
		config.MaxRetry,
		logger,
	)
	plainFetcher := core.NewRetryFetcher(shell.NewHTTPFetcher(client, shell.WithPlainHeaders()), config.MaxRetry, logger)
	verifier := core.NewDigestVerifier()

	options := []core.InstallerOption{core.WithConcurrency(config.MaxConcurrency)}
	if config.SkipVerified {
		options = append(options, core.WithIntegrityCheck(core.NewLocalArtifactCheck(disk)))
	}
	installer := core.NewInstaller(fetcher, verifier, disk, logger, options...)
	resolver := core.NewResourceResolver(config.OS, config.AssetBaseURL)
	catalog := core.NewCatalog(fetcher, plainFetcher, verifier, config.ManifestURL)

	return services{
		disk:      disk,
		cache:     core.NewCatalogCache(catalog, disk, config.CacheDirectory, config.CacheExpiry(), logger),
		operation: core.NewInstallOperation(catalog, resolver, installer, disk, logger),
	}
}
