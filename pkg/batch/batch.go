// Package batch fans report parsing out over a worker pool and collects the
// per-file results into a single tree.
package batch

import (
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/dahlj/integrity-report/pkg/report"
	"github.com/dahlj/integrity-report/pkg/result"
	"github.com/dahlj/integrity-report/pkg/sniff"
	"github.com/dahlj/integrity-report/pkg/summary"
)

// ErrPoolTimeout is returned when the pool fails to drain within the safety
// ceiling. That ceiling is deliberately enormous; hitting it means an
// internal fault, not a slow batch.
var ErrPoolTimeout = errors.New("parse workers did not finish within the safety ceiling")

// joinCeiling bounds how long Run waits for the pool. Well-formed input
// terminates the per-file scan early, so in practice the pool finishes in
// seconds; a day accommodates pathological inputs without ever firing on
// real ones.
const joinCeiling = 24 * time.Hour

// maxWorkers caps the pool regardless of hardware parallelism. Batches are
// small; more workers than this just contend on the allocator.
const maxWorkers = 16

// Options configures a batch run.
type Options struct {
	// Root labels the resulting tree, normally the scan root path.
	Root string
	// Workers is the pool size. Zero picks a size from the number of CPUs.
	Workers int
	// Entities extends the named-entity table used for HTML-wrapped
	// reports. Nil keeps the defaults.
	Entities map[string]string
	// Log receives one line per processed file and one per skipped file.
	// Nil uses the package default logger.
	Log *log.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	n := runtime.NumCPU()
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Run processes every file through sniffing and summary extraction and
// returns the populated tree, children sorted by file name.
//
// Per-file failures are logged and the file is skipped; they never fail the
// batch. Run blocks until all workers finish (or the safety ceiling
// elapses, which is treated as an unrecoverable internal fault).
func Run(files []report.File, opts Options) (*result.Tree, error) {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}

	entities := sniff.Entities()
	for k, v := range opts.Entities {
		entities[k] = v
	}

	tree := result.NewTree(opts.Root)
	tasks := make(chan report.File)

	var wg sync.WaitGroup
	for i := 0; i < opts.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range tasks {
				leaf, err := parseOne(f, entities, logger)
				if err != nil {
					logger.Error("skipping unparsable report file",
						"file", f.Path, "err", err)
					continue
				}
				tree.AddChild(leaf)
			}
		}()
	}

	for _, f := range files {
		tasks <- f
	}
	close(tasks)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(joinCeiling):
		return nil, ErrPoolTimeout
	}

	tree.SortByFileName()
	return tree, nil
}

func parseOne(f report.File, entities map[string]string, logger *log.Logger) (result.Leaf, error) {
	logger.Info("parsing report file", "file", f.Path)

	c := sniff.Classify(f.Data)
	counts, err := summary.Extract(sniff.ParseInput(f.Data, c), entities)
	if err != nil {
		return result.Leaf{}, err
	}
	return result.Leaf{
		FileName:    f.Path,
		ContentType: c.ContentType,
		Data:        f.Data,
		Counts:      counts,
	}, nil
}
