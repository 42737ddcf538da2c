package core

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/smartystreets/clock"

	"github.com/smarty/mcinstall/contracts"
)

const ManifestCacheFileName = "version_manifest.json"

type ManifestSource interface {
	Manifest(ctx context.Context) (contracts.VersionManifest, []byte, error)
}

type CacheFileSystem interface {
	contracts.DirectoryCreator
	contracts.FileChecker
	contracts.FileReader
	contracts.FileWriter
}

// CatalogCache keeps a copy of the version manifest on disk and only
// consults the source once the copy is older than the expiry. An expiry of
// zero or less always consults the source.
type CatalogCache struct {
	source    ManifestSource
	disk      CacheFileSystem
	directory string
	expiry    time.Duration
	logger    logrus.FieldLogger
	clock     *clock.Clock
}

func NewCatalogCache(source ManifestSource, disk CacheFileSystem, directory string, expiry time.Duration, logger logrus.FieldLogger) *CatalogCache {
	return &CatalogCache{
		source:    source,
		disk:      disk,
		directory: directory,
		expiry:    expiry,
		logger:    logger,
	}
}

func (this *CatalogCache) Load(ctx context.Context) (contracts.VersionManifest, error) {
	if manifest, ok := this.cached(); ok {
		return manifest, nil
	}

	manifest, raw, err := this.source.Manifest(ctx)
	if err != nil {
		return contracts.VersionManifest{}, err
	}
	if err = this.store(raw); err != nil {
		this.logger.WithError(err).Warn("unable to cache version manifest")
	}
	return manifest, nil
}

func (this *CatalogCache) cached() (manifest contracts.VersionManifest, ok bool) {
	path := this.path()
	info, err := this.disk.Stat(path)
	if err != nil {
		return manifest, false
	}
	if age := this.clock.UTCNow().Sub(info.ModTime()); this.expiry <= 0 || age > this.expiry {
		this.logger.WithField("age", age.Round(time.Second)).Debug("cached version manifest expired")
		return manifest, false
	}
	raw, err := this.disk.ReadFile(path)
	if err != nil {
		return manifest, false
	}
	if err = json.Unmarshal(raw, &manifest); err != nil {
		this.logger.WithError(err).Debug("cached version manifest is malformed")
		return manifest, false
	}
	return manifest, true
}

func (this *CatalogCache) store(raw []byte) error {
	if err := this.disk.MkdirAll(this.directory); err != nil {
		return errors.Wrapf(err, "creating cache directory %s", this.directory)
	}
	return this.disk.WriteFile(this.path(), raw)
}

func (this *CatalogCache) path() string {
	return filepath.Join(this.directory, ManifestCacheFileName)
}
