package compute

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrPoolClosed is returned when submitting to a closed Pool.
var ErrPoolClosed = errors.New("pool closed")

// Pool runs submitted tasks on a fixed number of worker goroutines.
// It is owned by the caller and may serve many computations.
type Pool struct {
	size  int
	tasks chan func()
	wg    sync.WaitGroup

	m      sync.RWMutex
	closed bool

	activeM sync.Mutex
	active  int
}

// NewPool starts size workers; sizes below one start a single worker.
func NewPool(size int) *Pool {
	size = max(size, 1)
	p := &Pool{
		size:  size,
		tasks: make(chan func(), size),
	}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Active returns the number of tasks currently running.
func (p *Pool) Active() int {
	p.activeM.Lock()
	defer p.activeM.Unlock()
	return p.active
}

// Submit queues task, blocking while the queue is full.
func (p *Pool) Submit(task func()) error {
	p.m.RLock()
	defer p.m.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Close stops accepting tasks, lets queued ones finish and waits for the
// workers to exit.
func (p *Pool) Close() {
	p.m.Lock()
	if p.closed {
		p.m.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.m.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run keeps the worker alive when task panics. Row tasks submitted by Set
// recover on their own and report a RowError, so only other tasks reach
// the warning here.
func (p *Pool) run(task func()) {
	p.incActive()
	defer p.decActive()
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("compute: pool task panicked", "panic", r)
		}
	}()
	task()
}

func (p *Pool) incActive() {
	p.activeM.Lock()
	p.active++
	p.activeM.Unlock()
}

func (p *Pool) decActive() {
	p.activeM.Lock()
	p.active--
	p.activeM.Unlock()
}
