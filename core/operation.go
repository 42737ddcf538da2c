package core

import (
	"context"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/smarty/mcinstall/contracts"
)

type VersionCatalog interface {
	Version(ctx context.Context, info contracts.VersionInfo) (contracts.Version, []byte, error)
	AssetIndex(ctx context.Context, version contracts.Version) (contracts.AssetIndex, []byte, error)
}

type ResourceInstaller interface {
	Install(ctx context.Context, resources []contracts.Resource, destination string) error
}

// InstallOperation populates one installation directory with a version's
// libraries and assets, along with the metadata they were resolved from.
type InstallOperation struct {
	catalog   VersionCatalog
	resolver  *ResourceResolver
	installer ResourceInstaller
	disk      InstallerFileSystem
	logger    logrus.FieldLogger
}

func NewInstallOperation(
	catalog VersionCatalog,
	resolver *ResourceResolver,
	installer ResourceInstaller,
	disk InstallerFileSystem,
	logger logrus.FieldLogger,
) *InstallOperation {
	return &InstallOperation{
		catalog:   catalog,
		resolver:  resolver,
		installer: installer,
		disk:      disk,
		logger:    logger,
	}
}

func (this *InstallOperation) Execute(ctx context.Context, info contracts.VersionInfo, installation contracts.Installation) error {
	this.logger.WithField("version", info.ID).Info("Fetching version info...")
	version, rawVersion, err := this.catalog.Version(ctx, info)
	if err != nil {
		return err
	}

	this.logger.WithField("asset_index", version.AssetIndex.ID).Info("Fetching asset index...")
	index, rawIndex, err := this.catalog.AssetIndex(ctx, version)
	if err != nil {
		return err
	}

	libraries, err := this.resolver.VersionResources(version)
	if err != nil {
		return errors.Wrapf(err, "resolving libraries of %s", version.ID)
	}
	assets, err := this.resolver.AssetResources(index)
	if err != nil {
		return errors.Wrapf(err, "resolving assets of %s", version.ID)
	}

	for _, directory := range []string{installation.LibraryDirectory, installation.ObjectDirectory(), installation.IndexDirectory()} {
		if err = this.disk.MkdirAll(directory); err != nil {
			return filesystemError("mkdir", directory, err)
		}
	}
	if err = this.persist(installation, version, rawVersion, rawIndex); err != nil {
		return err
	}

	this.logger.WithFields(logrus.Fields{
		"resources": len(libraries),
		"files":     contracts.CountArtifacts(libraries),
	}).Infof("Installing libraries to %s", installation.LibraryDirectory)
	if err = this.installer.Install(ctx, libraries, installation.LibraryDirectory); err != nil {
		return err
	}

	this.logger.WithFields(logrus.Fields{
		"resources": len(assets),
		"files":     contracts.CountArtifacts(assets),
	}).Infof("Installing assets to %s", installation.ObjectDirectory())
	return this.installer.Install(ctx, assets, installation.ObjectDirectory())
}

func (this *InstallOperation) persist(installation contracts.Installation, version contracts.Version, rawVersion, rawIndex []byte) error {
	records := []struct {
		root    string
		name    string
		content []byte
	}{
		{root: installation.Path, name: version.ID + ".json", content: rawVersion},
		{root: installation.IndexDirectory(), name: version.AssetIndex.ID + ".json", content: rawIndex},
		{root: installation.Path, name: "asset_index.json", content: rawIndex},
	}
	for _, record := range records {
		path, err := securejoin.SecureJoin(record.root, record.name)
		if err != nil {
			return filesystemError("resolve", record.name, err)
		}
		if err = this.disk.WriteFile(path, record.content); err != nil {
			return filesystemError("write", path, err)
		}
	}
	return nil
}
