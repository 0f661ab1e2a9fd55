package worker

import (
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/kinemove/oerror"
	"github.com/sirupsen/logrus"
)

// Pool runs submitted jobs on a fixed number of goroutines. A job that panics is reported to Sentry and
// logged; the worker running it keeps serving the queue.
type Pool struct {
	log   *logrus.Logger
	queue chan func()

	jobs    sync.WaitGroup
	workers sync.WaitGroup
	once    sync.Once
}

// New starts a pool with size workers. A size below one uses one worker per CPU.
func New(log *logrus.Logger, size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Pool{log: log, queue: make(chan func(), size)}
	p.workers.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer p.jobs.Done()
	defer func() {
		if v := recover(); v != nil {
			err := oerror.New("worker job panicked: %v", v)
			p.log.Error(err)

			hub := sentry.CurrentHub().Clone()
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()
	f()
}

// Submit queues f, blocking while every worker is busy and the queue is full. Submitting to a closed
// pool panics.
func (p *Pool) Submit(f func()) {
	p.jobs.Add(1)
	p.queue <- f
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Close waits for queued jobs and stops the workers.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
		p.workers.Wait()
	})
}
