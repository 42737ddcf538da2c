package shell

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/smarty/mcinstall/contracts"
)

type DatabaseFileSystem interface {
	contracts.DirectoryCreator
	contracts.FileReader
	contracts.FileWriter
}

type databaseRecords struct {
	Installations []contracts.Installation `json:"installations"`
}

// InstallationDatabase is a JSON file listing every installation. A lock
// file beside it is held from open until close, so concurrent invocations
// cannot lose each other's records.
type InstallationDatabase struct {
	path    string
	disk    DatabaseFileSystem
	lock    *flock.Flock
	records databaseRecords
}

func OpenInstallationDatabase(ctx context.Context, path string, disk DatabaseFileSystem) (*InstallationDatabase, error) {
	if err := disk.MkdirAll(filepath.Dir(path)); err != nil {
		return nil, errors.Wrapf(err, "creating database directory for %s", path)
	}

	lock := flock.New(strings.TrimSuffix(path, filepath.Ext(path)) + ".lock")
	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, errors.Wrapf(err, "locking database %s", path)
	}
	if !locked {
		return nil, errors.Errorf("database %s is locked by another process", path)
	}

	this := &InstallationDatabase{path: path, disk: disk, lock: lock}
	if err = this.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return this, nil
}

func (this *InstallationDatabase) load() error {
	raw, err := this.disk.ReadFile(this.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading database %s", this.path)
	}
	if err = json.Unmarshal(raw, &this.records); err != nil {
		return errors.Wrapf(err, "decoding database %s", this.path)
	}
	return nil
}

func (this *InstallationDatabase) Installations() []contracts.Installation {
	return append([]contracts.Installation(nil), this.records.Installations...)
}

func (this *InstallationDatabase) Add(installation contracts.Installation) {
	this.records.Installations = append(this.records.Installations, installation)
}

func (this *InstallationDatabase) Commit() error {
	if this.records.Installations == nil {
		this.records.Installations = []contracts.Installation{}
	}
	raw, err := json.MarshalIndent(this.records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding database")
	}
	if err = this.disk.WriteFile(this.path, raw); err != nil {
		return errors.Wrapf(err, "writing database %s", this.path)
	}
	return nil
}

func (this *InstallationDatabase) Close() error {
	return this.lock.Unlock()
}
