package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool closed")
)

// Pool. goroutine pool for short tasks. at most size goroutines run tasks at once,
// work is queued until one is free.
type Pool struct {
	sem  chan struct{}
	work chan func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewPool. size goroutines at most, queue is the number of tasks waiting for an idle goroutine,
// spawn goroutines are started up front.
func NewPool(size, queue, spawn int) *Pool {
	if size < 1 {
		size = 1
	}
	if spawn > size {
		spawn = size
	}
	if spawn <= 0 && queue > 0 {
		// queued work must always have a worker to drain it
		spawn = 1
	}

	p := &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
	for i := 0; i < spawn; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}

	return p
}

// Schedule. blocks until the task is accepted.
func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule but gives up with ErrScheduleTimeout when no goroutine is free in time.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return p.schedule(task, timer.C)
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	case <-p.done:
		return ErrPoolClosed
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for {
		select {
		case task := <-p.work:
			task()
		case <-p.done:
			return
		}
	}
}

// Close. stops idle workers. running tasks finish, queued tasks may be dropped.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
