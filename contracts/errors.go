package contracts

import (
	"fmt"
	"net/http"
)

// ConfigurationError reports a host operating system name that is not one
// of the supported platforms. It is fatal and raised before resolution.
type ConfigurationError struct {
	Value string
}

func (this *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized host os: %q (expected osx, linux, or windows)", this.Value)
}

// ResolutionError reports a library or asset entry that cannot be turned
// into artifacts.
type ResolutionError struct {
	Resource   string
	Classifier string
	Reason     string
}

func (this *ResolutionError) Error() string {
	if this.Classifier != "" {
		return fmt.Sprintf("cannot resolve %q: classifier %q %s", this.Resource, this.Classifier, this.Reason)
	}
	return fmt.Sprintf("cannot resolve %q: %s", this.Resource, this.Reason)
}

type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (this *FetchError) Error() string {
	if this.Err != nil {
		return fmt.Sprintf("fetch %s: %v", this.URL, this.Err)
	}
	return fmt.Sprintf("fetch %s: received non-success HTTP status code (%s)", this.URL, this.Status)
}

func (this *FetchError) Unwrap() error { return this.Err }

// Temporary reports whether another attempt could plausibly succeed:
// transport failures and server-side statuses.
func (this *FetchError) Temporary() bool {
	return this.Err != nil || this.StatusCode >= http.StatusInternalServerError
}

type ChecksumMismatch struct {
	URL      string
	Expected string
	Actual   string
}

func (this *ChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum verification failed for %s (expected: [%s], actual: [%s])", this.URL, this.Expected, this.Actual)
}

type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (this *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", this.Op, this.Path, this.Err)
}

func (this *FilesystemError) Unwrap() error { return this.Err }

// InstallError attributes a per-artifact failure to the resource and file
// it belongs to.
type InstallError struct {
	Resource string
	URL      string
	Path     string
	Err      error
}

func (this *InstallError) Error() string {
	return fmt.Sprintf("install %q (%s -> %s): %v", this.Resource, this.URL, this.Path, this.Err)
}

func (this *InstallError) Unwrap() error { return this.Err }
