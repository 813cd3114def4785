// Package report locates and loads Integrity result files in a workspace.
package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// Sentinel errors for the two discovery failure modes. Both are
// configuration-level failures: the batch never starts.
var (
	// ErrNoMatch means the glob pattern matched no files at all.
	ErrNoMatch = errors.New("no report files matched pattern")
	// ErrAllStale means files matched but every one predates the build.
	ErrAllStale = errors.New("all matching report files are stale")
)

// File is one discovered report file, read fully into memory. The bytes are
// read exactly once and are immutable afterwards: the same buffer feeds the
// parser and is retained for archival.
type File struct {
	// Path is the file's path relative to the scan root.
	Path string
	// Name is the base file name.
	Name string
	// ModTime is the file's last-modification time.
	ModTime time.Time
	// Data is the full file content.
	Data []byte
}

// DiscoverOpts controls staleness filtering during discovery.
type DiscoverOpts struct {
	// BuildStart is when the current build began, on the host's clock.
	BuildStart time.Time
	// HostNow is "now" as sampled by the host alongside BuildStart. The
	// host and this process may run on machines with skewed clocks, so the
	// staleness threshold is derived from the build's age rather than by
	// comparing the host timestamp against local file times directly.
	// Zero means the local clock is authoritative.
	HostNow time.Time
	// StaleMargin widens the acceptance window to absorb small clock
	// differences and coarse filesystem timestamps.
	StaleMargin time.Duration
	// IgnoreStale disables the staleness check entirely.
	IgnoreStale bool
}

// Threshold returns the oldest acceptable modification time, on the local
// clock. now is sampled once by the caller.
func (o DiscoverOpts) Threshold(now time.Time) time.Time {
	hostNow := o.HostNow
	if hostNow.IsZero() {
		hostNow = now
	}
	buildAge := hostNow.Sub(o.BuildStart)
	return now.Add(-buildAge).Add(-o.StaleMargin)
}

// Discover resolves pattern against root and returns every matching file
// that passes the staleness filter, each read fully into memory. Patterns
// support the usual glob wildcards including ** for recursive matching.
//
// Returns ErrNoMatch when nothing matches and ErrAllStale when matches
// exist but all of them predate the build (the error names one stale
// candidate to aid diagnosis).
func Discover(root, pattern string, opts DiscoverOpts) ([]File, error) {
	matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "resolving pattern %q", pattern)
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrNoMatch, "pattern %q under %s", pattern, root)
	}

	threshold := opts.Threshold(time.Now())

	var (
		files      []File
		staleSeen  string
		staleAge   time.Duration
		staleCount int
	)
	for _, rel := range matches {
		full := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", full)
		}
		if info.IsDir() {
			continue
		}
		if !opts.IgnoreStale && !info.ModTime().After(threshold) {
			staleCount++
			if staleSeen == "" {
				staleSeen = full
				staleAge = threshold.Sub(info.ModTime())
			}
			continue
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", full)
		}
		files = append(files, File{
			Path:    rel,
			Name:    filepath.Base(rel),
			ModTime: info.ModTime(),
			Data:    data,
		})
	}

	if len(files) == 0 {
		if staleSeen != "" {
			return nil, errors.Wrapf(ErrAllStale,
				"%d file(s) matched but predate the build; e.g. %s is %s older than the threshold",
				staleCount, staleSeen, staleAge.Round(time.Second))
		}
		return nil, errors.Wrapf(ErrNoMatch, "pattern %q under %s matched only directories", pattern, root)
	}
	return files, nil
}
