package core

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/clock"
	"github.com/smartystreets/gunit"

	"github.com/smarty/mcinstall/contracts"
)

func TestCatalogCacheFixture(t *testing.T) {
	gunit.Run(new(CatalogCacheFixture), t)
}

type CatalogCacheFixture struct {
	*gunit.Fixture
	cache  *CatalogCache
	source *FakeManifestSource
	disk   *inMemoryFileSystem
}

const cachedManifestPath = "/cache/" + ManifestCacheFileName

func (this *CatalogCacheFixture) Setup() {
	this.source = &FakeManifestSource{raw: []byte(`{"latest":{"release":"1.19.4"},"versions":[{"id":"1.19.4"}]}`)}
	this.source.manifest = contracts.VersionManifest{
		Latest:   contracts.LatestVersions{Release: "1.19.4"},
		Versions: []contracts.VersionInfo{{ID: "1.19.4"}},
	}
	this.disk = newInMemoryFileSystem()
	logger, _ := test.NewNullLogger()
	this.cache = NewCatalogCache(this.source, this.disk, "/cache", 5*24*time.Hour, logger)
	this.cache.clock = clock.Freeze(InMemoryModTime.Add(time.Hour))
}

func (this *CatalogCacheFixture) TestMissingCacheIsFetchedAndWritten() {
	manifest, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(manifest, should.Resemble, this.source.manifest)
	this.So(this.source.calls, should.Equal, 1)
	this.So(this.disk.contents(cachedManifestPath), should.Equal, string(this.source.raw))
}

func (this *CatalogCacheFixture) TestFreshCacheIsUsed() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{"latest":{"release":"1.18"},"versions":[{"id":"1.18"}]}`))

	manifest, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(this.source.calls, should.Equal, 0)
	this.So(manifest.Latest.Release, should.Equal, "1.18")
}

func (this *CatalogCacheFixture) TestExpiredCacheIsRefreshed() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{"latest":{"release":"1.18"}}`))
	this.disk.Touch(cachedManifestPath, InMemoryModTime.Add(-5*24*time.Hour))

	manifest, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(this.source.calls, should.Equal, 1)
	this.So(manifest.Latest.Release, should.Equal, "1.19.4")
}

func (this *CatalogCacheFixture) TestMalformedCacheIsRefreshed() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{"latest":`))

	_, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(this.source.calls, should.Equal, 1)
}

func (this *CatalogCacheFixture) TestUnreadableCacheIsRefreshed() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{}`))
	this.disk.errReadFile[cachedManifestPath] = errors.New("io")

	_, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(this.source.calls, should.Equal, 1)
}

func (this *CatalogCacheFixture) TestCacheWriteFailureIsNotFatal() {
	this.disk.errWriteFile[cachedManifestPath] = errors.New("read-only")

	manifest, err := this.cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(manifest.Latest.Release, should.Equal, "1.19.4")
}

func (this *CatalogCacheFixture) TestSourceFailureIsReturned() {
	this.source.err = errors.New("offline")

	_, err := this.cache.Load(context.Background())

	this.So(err, should.Equal, this.source.err)
}

func (this *CatalogCacheFixture) TestZeroExpiryAlwaysRefreshes() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{"latest":{"release":"1.18"}}`))
	logger, _ := test.NewNullLogger()
	cache := NewCatalogCache(this.source, this.disk, "/cache", 0, logger)
	cache.clock = clock.Freeze(InMemoryModTime)

	manifest, err := cache.Load(context.Background())

	this.So(err, should.BeNil)
	this.So(this.source.calls, should.Equal, 1)
	this.So(manifest.Latest.Release, should.Equal, "1.19.4")
}

func (this *CatalogCacheFixture) TestConfiguredZeroExpiryDaysReachesTheCache() {
	_ = this.disk.WriteFile(cachedManifestPath, []byte(`{"latest":{"release":"1.18"}}`))
	this.disk.Touch(cachedManifestPath, InMemoryModTime.Add(-2*24*time.Hour))
	loader := NewConfigLoader(this.disk, io.Discard, DefaultConfig("/home/config", "/home/cache"))
	config, err := loader.LoadConfig("install", []string{"--os", "linux", "--cache-expiry-days", "0"})
	this.So(err, should.BeNil)
	logger, _ := test.NewNullLogger()
	cache := NewCatalogCache(this.source, this.disk, "/cache", config.CacheExpiry(), logger)
	cache.clock = this.cache.clock

	manifest, _ := cache.Load(context.Background())

	this.So(config.CacheExpiry(), should.Equal, time.Duration(0))
	this.So(this.source.calls, should.Equal, 1)
	this.So(manifest.Latest.Release, should.Equal, "1.19.4")
}

func (this *CatalogCacheFixture) TestDefaultConfigKeepsCacheForFiveDays() {
	config := DefaultConfig("/home/config", "/home/cache")

	this.So(config.CacheExpiry(), should.Equal, 5*24*time.Hour)
}

//////////////////////////////////////////////////////////////////////

type FakeManifestSource struct {
	manifest contracts.VersionManifest
	raw      []byte
	err      error
	calls    int
}

func (this *FakeManifestSource) Manifest(_ context.Context) (contracts.VersionManifest, []byte, error) {
	this.calls++
	return this.manifest, this.raw, this.err
}
