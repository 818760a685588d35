// worker/pool.go
package worker

import "sync"

type Job[T any] func() T

type Result[T any] struct {
	Index  int
	Output T
}

// Pool runs submitted jobs on a fixed number of goroutines.
// Results arrive in completion order; Index identifies the job.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
}

type jobWrapper[T any] struct {
	index int
	fn    Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}

	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- Result[T]{
			Index:  job.index,
			Output: job.fn(),
		}
	}
}

func (p *Pool[T]) Submit(index int, fn Job[T]) {
	p.jobs <- jobWrapper[T]{index: index, fn: fn}
}

// Close stops accepting jobs. Results is closed once every submitted job has finished.
func (p *Pool[T]) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Run executes jobs on workerCount goroutines and returns their outputs in
// the order the jobs were given, whatever order they finish in.
func Run[T any](workerCount int, jobs []Job[T]) []T {
	out := make([]T, len(jobs))
	if len(jobs) == 0 {
		return out
	}
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	p := NewPool[T](workerCount, len(jobs))
	for i, fn := range jobs {
		p.Submit(i, fn)
	}
	p.Close()

	for r := range p.Results() {
		out[r.Index] = r.Output
	}
	return out
}
