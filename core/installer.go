package core

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/smarty/mcinstall/contracts"
)

type InstallerFileSystem interface {
	contracts.DirectoryCreator
	contracts.FileWriter
}

// Installer fetches, verifies, and writes every artifact of a set of
// resources into a destination directory, concurrently.
type Installer struct {
	fetcher   contracts.Fetcher
	verifier  contracts.DigestVerifier
	disk      InstallerFileSystem
	integrity contracts.IntegrityCheck
	logger    logrus.FieldLogger
	limit     int
	interval  time.Duration
}

type InstallerOption func(*Installer)

// WithConcurrency bounds the number of artifacts in flight. A limit of
// zero or less launches every artifact at once.
func WithConcurrency(limit int) InstallerOption {
	return func(this *Installer) { this.limit = limit }
}

// WithIntegrityCheck skips artifacts whose destination already passes
// check. Without it every artifact is fetched and overwritten.
func WithIntegrityCheck(check contracts.IntegrityCheck) InstallerOption {
	return func(this *Installer) { this.integrity = check }
}

// WithProgressInterval sets how often the running tally is logged.
// Non-positive intervals are ignored.
func WithProgressInterval(interval time.Duration) InstallerOption {
	return func(this *Installer) {
		if interval > 0 {
			this.interval = interval
		}
	}
}

func NewInstaller(
	fetcher contracts.Fetcher,
	verifier contracts.DigestVerifier,
	disk InstallerFileSystem,
	logger logrus.FieldLogger,
	options ...InstallerOption,
) *Installer {
	this := &Installer{
		fetcher:  fetcher,
		verifier: verifier,
		disk:     disk,
		logger:   logger,
		interval: 2 * time.Second,
	}
	for _, option := range options {
		option(this)
	}
	return this
}

type artifactJob struct {
	resource string
	artifact contracts.Artifact
	first    bool
}

// Install returns nil only when every artifact was written and verified.
// After the first failure no further artifacts are started, but those
// already in flight finish; every failure observed is returned as an
// *contracts.InstallError inside a *multierror.Error. Files written
// before a failure remain on disk.
func (this *Installer) Install(ctx context.Context, resources []contracts.Resource, destination string) error {
	jobs := flatten(resources)
	progress := newProgressCounter(len(jobs), totalSize(jobs), this.interval, this.reportProgress)
	defer func() { _ = progress.Close() }()

	launch, abort := context.WithCancel(ctx)
	defer abort()

	slots := this.slots()
	waiter := new(sync.WaitGroup)
	results := make(chan error)

	go func() {
		defer close(results)
		for _, job := range jobs {
			if !acquire(launch, slots) {
				break
			}
			if job.first {
				this.logger.WithField("resource", job.resource).Infof("=> %s", job.resource)
			}
			waiter.Add(1)
			go func(job artifactJob) {
				defer waiter.Done()
				defer release(slots)
				err := this.installArtifact(ctx, job, destination)
				if err != nil {
					abort()
				} else {
					progress.Add(int(job.artifact.Size))
				}
				results <- err
			}(job)
		}
		waiter.Wait()
	}()

	var failures *multierror.Error
	for err := range results {
		if err != nil {
			failures = multierror.Append(failures, err)
		}
	}
	if failures == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return failures.ErrorOrNil()
}

func (this *Installer) installArtifact(ctx context.Context, job artifactJob, destination string) error {
	relative := job.artifact.Destination(job.resource)
	target, err := securejoin.SecureJoin(destination, relative)
	if err != nil {
		return this.failure(job, relative, &contracts.FilesystemError{Op: "resolve", Path: relative, Err: err})
	}

	logger := this.logger.WithFields(logrus.Fields{"resource": job.resource, "path": target})
	logger.Infof("  -> %s", target)

	if this.integrity != nil && this.integrity.Verify(job.artifact, target) == nil {
		logger.Debug("already installed, skipping")
		return nil
	}

	if err = this.disk.MkdirAll(filepath.Dir(target)); err != nil {
		return this.failure(job, target, filesystemError("mkdir", filepath.Dir(target), err))
	}
	content, err := this.fetcher.Fetch(ctx, job.artifact.URL)
	if err != nil {
		return this.failure(job, target, err)
	}
	if err = this.verifier.Verify(job.artifact, content); err != nil {
		return this.failure(job, target, err)
	}
	if err = this.disk.WriteFile(target, content); err != nil {
		return this.failure(job, target, filesystemError("write", target, err))
	}
	return nil
}

func (this *Installer) failure(job artifactJob, path string, err error) error {
	return &contracts.InstallError{Resource: job.resource, URL: job.artifact.URL, Path: path, Err: err}
}

func (this *Installer) reportProgress(completed, artifacts int, written, total string) {
	this.logger.WithFields(logrus.Fields{
		"completed": completed,
		"artifacts": artifacts,
	}).Infof("installed %d of %d files (%s of %s)", completed, artifacts, written, total)
}

func (this *Installer) slots() *semaphore.Weighted {
	if this.limit <= 0 {
		return nil
	}
	return semaphore.NewWeighted(int64(this.limit))
}

func acquire(ctx context.Context, slots *semaphore.Weighted) bool {
	if slots == nil {
		return ctx.Err() == nil
	}
	if slots.Acquire(ctx, 1) != nil {
		return false
	}
	if ctx.Err() != nil {
		slots.Release(1)
		return false
	}
	return true
}

func release(slots *semaphore.Weighted) {
	if slots != nil {
		slots.Release(1)
	}
}

func flatten(resources []contracts.Resource) (jobs []artifactJob) {
	for _, resource := range resources {
		for i, artifact := range resource.Artifacts {
			jobs = append(jobs, artifactJob{resource: resource.Name, artifact: artifact, first: i == 0})
		}
	}
	return jobs
}

func filesystemError(op, path string, err error) error {
	var existing *contracts.FilesystemError
	if errors.As(err, &existing) {
		return err
	}
	return &contracts.FilesystemError{Op: op, Path: path, Err: err}
}
