// Package verdict maps aggregate counters to a build outcome.
package verdict

import "github.com/dahlj/integrity-report/pkg/summary"

// Verdict is the build outcome derived from a batch's aggregate counts.
type Verdict int

const (
	// Success means every recorded result passed.
	Success Verdict = iota
	// Unstable means there were failures or exceptions but the build is
	// not configured to fail hard on them.
	Unstable
	// Failure means failures or exceptions with strict mode on, or no
	// results at all without permission to ignore that.
	Failure
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case Success:
		return "success"
	case Unstable:
		return "unstable"
	default:
		return "failure"
	}
}

// ExitCode maps the verdict to a process exit code: 0 success, 1 failure,
// 2 unstable.
func (v Verdict) ExitCode() int {
	switch v {
	case Success:
		return 0
	case Unstable:
		return 2
	default:
		return 1
	}
}

// Options configures verdict evaluation.
type Options struct {
	// Strict fails the build on any failure or exception instead of
	// marking it unstable.
	Strict bool
	// IgnoreNoResults keeps an empty batch from failing the build.
	IgnoreNoResults bool
}

// Evaluate derives the verdict from the aggregate counters of a batch.
// resultCount is the number of files that actually produced a leaf.
func Evaluate(agg summary.Counts, resultCount int, opts Options) Verdict {
	if resultCount == 0 {
		if opts.IgnoreNoResults {
			return Success
		}
		return Failure
	}
	if agg.Problems() > 0 {
		if opts.Strict {
			return Failure
		}
		return Unstable
	}
	return Success
}
