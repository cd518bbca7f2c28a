package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/models"
)

var ErrSchedulerClosed = errors.New("scheduler closed")

// Work is a unit of work run by one of the scheduler's workers.
type Work func(ctx context.Context) (any, error)

type job struct {
	work   Work
	ctx    context.Context
	future *models.Future[models.Result[any]]
}

// Scheduler runs work on a fixed pool of workers. Queued work is unbounded and
// executed in submission order.
type Scheduler struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []job
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(numWorkers int) *Scheduler {
	if numWorkers < 1 {
		numWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
	s.cond = sync.NewCond(&s.mu)

	s.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go s.worker(i)
	}

	return s
}

// AddWork queues w and returns a future resolved with its outcome. Stopping the
// future cancels the context passed to w.
func (s *Scheduler) AddWork(w Work) *models.Future[models.Result[any]] {
	ctx, cancel := context.WithCancel(s.ctx)
	f := models.NewFuture[models.Result[any]](cancel)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		cancel()
		f.Resolve(models.Result[any]{Err: ErrSchedulerClosed})
		return f
	}

	s.queue = append(s.queue, job{work: w, ctx: ctx, future: f})
	s.cond.Signal()

	return f
}

// Pending returns the number of queued jobs not yet picked up by a worker.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Close cancels running work, fails queued work and waits for the workers to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := s.queue
	s.queue = nil
	s.cond.Broadcast()
	s.mu.Unlock()

	s.cancel()
	for _, j := range pending {
		j.future.Resolve(models.Result[any]{Err: ErrSchedulerClosed})
	}

	s.wg.Wait()
	zap.S().Named("scheduler").Debugw("scheduler closed", "dropped", len(pending))
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		j := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.run(id, j)
	}
}

func (s *Scheduler) run(id int, j job) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "worker", id, "panic", r)
			j.future.Resolve(models.Result[any]{Err: errors.New("work panicked")})
		}
	}()

	if err := j.ctx.Err(); err != nil {
		j.future.Resolve(models.Result[any]{Err: err})
		return
	}

	data, err := j.work(j.ctx)
	j.future.Resolve(models.Result[any]{Data: data, Err: err})
}
