package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelizeAlone calculates the result of f count times
func parallelizeAlone(f func(int) interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = f(i)
	}
	return results
}

// command is used to trigger our latent workers to evaluate f at index i.
type command struct {
	// This counter indicates the number of results that still need to be produced.
	ctr *int64
	i   int
	f   func(int) interface{}
	// This is the array where we put results
	results []interface{}
}

// worker starts up a new worker, listening to commands, and producing results
func worker(commands <-chan command, ctrChanged chan<- struct{}) {
	for c := range commands {
		c.results[c.i] = c.f(c.i)
		atomic.AddInt64(c.ctr, -1)
		ctrChanged <- struct{}{}
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current thread instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each batch of signatures to verify.
type Pool struct {
	// The common channel used to send commands to the workers.
	//
	// This effectively makes a work stealing pool.
	commands chan command
	// The channel used to signal a finished task
	ctrChanged chan struct{}
	// Parallelize holds this lock for the whole batch, since ctrChanged is shared.
	mu       sync.Mutex
	teardown sync.Once
	// This holds the number of workers we've created
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}

	p := &Pool{
		commands:    make(chan command),
		ctrChanged:  make(chan struct{}),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.commands, p.ctrChanged)
	}

	return p
}

// Workers returns the number of workers in the pool, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// TearDown cleanly tears down a pool, closing channels, etc.
//
// Calling it more than once is a no-op; using the pool afterwards panics.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	p.teardown.Do(func() {
		close(p.commands)
	})
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		return parallelizeAlone(f, count)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]interface{}, count)

	ctr := int64(count)
	cmdI := 0
	for cmdI < count {
		cmd := command{
			i:       cmdI,
			ctr:     &ctr,
			f:       f,
			results: results,
		}
		// We won't be able to send all the commands without blocking, so we make
		// sure to interleave picking off the results of workers to free them up
		// to receive our commands
		select {
		case p.commands <- cmd:
			cmdI++
		case <-p.ctrChanged:
		}
	}
	for atomic.LoadInt64(&ctr) > 0 {
		<-p.ctrChanged
	}

	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
//
// Wrapping a *LockedReader returns it unchanged.
func NewLockedReader(r io.Reader) *LockedReader {
	if locked, ok := r.(*LockedReader); ok {
		return locked
	}
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// The behavior is to return the same output as the underlying reader. The difference
// is that it's safe to call this function concurrently.
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
