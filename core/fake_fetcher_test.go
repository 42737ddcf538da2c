package core

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/smarty/mcinstall/contracts"
)

type FakeFetcher struct {
	mutex    sync.Mutex
	bodies   map[string][]byte
	errors   map[string]error
	attempts map[string]int
	inFlight int
	peak     int
	gate     chan struct{}
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		bodies:   make(map[string][]byte),
		errors:   make(map[string]error),
		attempts: make(map[string]int),
	}
}

func (this *FakeFetcher) Serve(address string, body []byte) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.bodies[address] = body
}

func (this *FakeFetcher) Fail(address string, err error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.errors[address] = err
}

func (this *FakeFetcher) FailStatus(address string, status int) {
	this.Fail(address, &contracts.FetchError{URL: address, StatusCode: status, Status: http.StatusText(status)})
}

func (this *FakeFetcher) Attempts(address string) int {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.attempts[address]
}

func (this *FakeFetcher) TotalAttempts() (total int) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	for _, count := range this.attempts {
		total += count
	}
	return total
}

func (this *FakeFetcher) Peak() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.peak
}

func (this *FakeFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	this.mutex.Lock()
	this.attempts[address]++
	this.inFlight++
	if this.inFlight > this.peak {
		this.peak = this.inFlight
	}
	gate := this.gate
	this.mutex.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.inFlight--
	if err := this.errors[address]; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &contracts.FetchError{URL: address, Err: err}
	}
	body, found := this.bodies[address]
	if !found {
		return nil, &contracts.FetchError{URL: address, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return body, nil
}

func digestOf(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
