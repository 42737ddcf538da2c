package core

import (
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// progressCounter tallies completed artifacts and bytes and reports them
// on a fixed interval until closed.
type progressCounter struct {
	completed  int64
	written    uint64
	artifacts  int
	total      string
	onProgress func(completed, artifacts int, written, total string)
	printTimer *time.Ticker
	done       chan struct{}
}

func newProgressCounter(artifacts int, size uint64, interval time.Duration, onProgress func(completed, artifacts int, written, total string)) *progressCounter {
	this := &progressCounter{
		artifacts:  artifacts,
		total:      humanize.IBytes(size),
		onProgress: onProgress,
		printTimer: time.NewTicker(interval),
		done:       make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-this.printTimer.C:
				this.reportProgress()
			case <-this.done:
				return
			}
		}
	}()
	return this
}

func (this *progressCounter) Add(size int) {
	atomic.AddInt64(&this.completed, 1)
	atomic.AddUint64(&this.written, uint64(size))
}

func (this *progressCounter) Close() error {
	this.printTimer.Stop()
	close(this.done)
	this.reportProgress()
	return nil
}

func (this *progressCounter) reportProgress() {
	completed := int(atomic.LoadInt64(&this.completed))
	written := humanize.IBytes(atomic.LoadUint64(&this.written))
	this.onProgress(completed, this.artifacts, written, this.total)
}

func totalSize(artifacts []artifactJob) (size uint64) {
	for _, job := range artifacts {
		size += uint64(job.artifact.Size)
	}
	return size
}
