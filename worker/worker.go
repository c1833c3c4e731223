// Package worker runs keyed jobs on a fixed pool. A key is accepted once while it is
// queued or running.
package worker

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Key string

type Job struct {
	Key     Key
	Kind    string
	Payload any
	Ctx     context.Context
}

func (j *Job) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		e.Str("key", string(j.Key)).
			Str("kind", j.Kind)
	}
}

type Step func(j *Job) error

type Service struct {
	name string

	mu      sync.Mutex
	cond    *sync.Cond
	queue   *list.List       // FIFO
	pending map[Key]struct{} // queued or in flight

	step    Step
	workers int

	closed bool
}

var (
	ErrClosed    = errors.New("worker service is closed")
	ErrDuplicate = errors.New("job already queued/in-flight")
)

func NewService(name string, step Step, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	s := &Service{
		name:    name,
		queue:   list.New(),
		pending: make(map[Key]struct{}, 64),
		step:    step,
		workers: workers,
	}
	log.Logger.Info().Str("service", name).Int("workers", workers).Msg("worker service created")
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Service) Submit(j Job) (bool, error) {
	logg := logging.Enter(j.Ctx, "worker.Service.Submit", map[string]any{"service": s.name, "job": &j})
	if j.Key == "" {
		err := fmt.Errorf("missing job key")
		logging.ExitErr(logg, err)
		return false, err
	}
	if j.Ctx == nil {
		j.Ctx = context.Background()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		logging.ExitErr(logg, ErrClosed)
		return false, ErrClosed
	}
	if _, exists := s.pending[j.Key]; exists {
		logging.Exit(logg, "duplicate", nil)
		return false, ErrDuplicate
	}

	s.pending[j.Key] = struct{}{}
	s.queue.PushBack(&j)

	s.cond.Signal()
	logging.Exit(logg, "queued", nil)
	return true, nil
}

// Pending reports whether key is queued or running.
func (s *Service) Pending(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Run blocks until ctx is done or the service is closed and drained.
func (s *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(s.workers)

	for i := 0; i < s.workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			s.workerLoop(ctx, workerID)
		}(i + 1)
	}

	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.mu.Unlock()
		s.cond.Broadcast()
	})
	defer stop()
	wg.Wait()
}

func (s *Service) workerLoop(ctx context.Context, workerID int) {
	logging.Info("worker.Service.workerLoop", "start", "ok", "", map[string]any{"service": s.name, "worker_id": workerID})
	for {
		j := s.pop(ctx)
		if j == nil {
			logging.Info("worker.Service.workerLoop", "stop", "ok", "", map[string]any{"service": s.name, "worker_id": workerID})
			return
		}
		logg := logging.Enter(j.Ctx, "worker.Service.loop", map[string]any{"service": s.name, "worker_id": workerID, "job": j})

		res := "ok"
		err := s.execute(j)
		if err != nil {
			logging.ErrorContinue(logg, err, nil)
			res = "error"
		}

		s.mu.Lock()
		delete(s.pending, j.Key)
		s.mu.Unlock()

		logging.Exit(logg, res, nil)
	}
}

func (s *Service) pop(ctx context.Context) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if e := s.queue.Front(); e != nil {
			s.queue.Remove(e)
			return e.Value.(*Job)
		}
		if s.closed {
			return nil
		}

		s.cond.Wait()
	}
}

func (s *Service) execute(j *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.Key, r)
		}
	}()
	return s.step(j)
}
