package perf

import (
	"kafkaperf/models"
	"kafkaperf/pkg/app/pretty_log"
	"sync"

	"github.com/pkg/errors"
)

// Node is what a benchmark worker needs from a cluster node. Implemented by
// cluster.Node; tests substitute fakes.
type Node interface {
	Hostname() string
	Capture(command string) (<-chan string, error)
	Run(command string) ([]string, error)
	CreateFile(path string, content string) error
	Free()
}

// Benchmark is one tool variant: it builds the remote command for a node and
// turns the tool's output stream into a metrics record. Log-only tools return
// a nil record.
type Benchmark interface {
	Name() string
	Run(idx int, node Node) (models.Metrics, []models.Metrics, error)
}

type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateWaited
	StateStopped
)

// ErrInvalidState marks a lifecycle misuse (stop before wait, wait twice).
// This is a programming error on the caller's side, not a runtime condition
// to recover from.
var ErrInvalidState = errors.New("invalid run lifecycle transition")

// Run drives one benchmark across a fixed set of nodes. Lifecycle is
// Start -> Wait -> Stop, checked at every transition. One worker goroutine
// per node; worker i writes only slot i, so workers share no mutable state
// and need no synchronization beyond the Wait barrier.
//
// A single goroutine is expected to drive the lifecycle.
type Run struct {
	bench Benchmark
	nodes []Node

	mut   sync.Mutex
	state State
	wg    sync.WaitGroup

	results []models.Metrics
	samples [][]models.Metrics
	errs    []error
}

func NewRun(bench Benchmark, nodes []Node) *Run {
	return &Run{
		bench:   bench,
		nodes:   nodes,
		results: make([]models.Metrics, len(nodes)),
		samples: make([][]models.Metrics, len(nodes)),
		errs:    make([]error, len(nodes)),
	}
}

// Start spawns one worker per node and returns immediately. Worker failures
// never cancel sibling workers; each node runs to completion or to its own
// contained error.
func (r *Run) Start() error {
	r.mut.Lock()
	defer r.mut.Unlock()

	if r.state != StateNotStarted {
		return errors.Wrap(ErrInvalidState, "start called on a run that already started")
	}
	r.state = StateRunning

	for idx, node := range r.nodes {
		i, n := idx, node
		pretty_log.TaskGroup("Running %s node %d on %s", r.bench.Name(), i+1, n.Hostname())

		r.wg.Add(1)
		go func() {
			defer r.wg.Done()

			result, samples, err := r.bench.Run(i+1, n)
			if err != nil {
				pretty_log.TaskResultBad("%s node %d on %s: %s", r.bench.Name(), i+1, n.Hostname(), err.Error())
				r.errs[i] = err
				r.samples[i] = samples
				return
			}

			r.results[i] = result
			r.samples[i] = samples
		}()
	}

	return nil
}

// Wait blocks until every worker has terminated. There is no timeout: a hung
// remote process hangs its worker and therefore Wait.
func (r *Run) Wait() error {
	r.mut.Lock()
	if r.state != StateRunning {
		r.mut.Unlock()
		return errors.Wrap(ErrInvalidState, "wait is only valid once, after start")
	}
	r.mut.Unlock()

	for idx := range r.nodes {
		pretty_log.Debug("Waiting for %s worker %d to finish", r.bench.Name(), idx+1)
	}
	r.wg.Wait()

	r.mut.Lock()
	r.state = StateWaited
	r.mut.Unlock()

	return nil
}

// Stop releases the nodes back to the allocator, in node order. It must only
// be called after Wait; nodes are never freed while sibling workers may still
// be running.
func (r *Run) Stop() error {
	r.mut.Lock()
	defer r.mut.Unlock()

	if r.state != StateWaited {
		return errors.Wrap(ErrInvalidState, "stop is only valid after wait")
	}
	r.state = StateStopped

	for idx, node := range r.nodes {
		pretty_log.Debug("Stopping %s node %d on %s", r.bench.Name(), idx+1, node.Hostname())
		node.Free()
	}

	return nil
}

// Results are index-aligned to the node list; a nil entry means the node
// produced no record. Read only after Wait has returned.
func (r *Run) Results() []models.Metrics {
	return r.results
}

// Samples holds per-node intermediate records when the benchmark collects
// them. Read only after Wait has returned.
func (r *Run) Samples() [][]models.Metrics {
	return r.samples
}

// Errs holds the per-node contained failures. Read only after Wait has returned.
func (r *Run) Errs() []error {
	return r.errs
}
