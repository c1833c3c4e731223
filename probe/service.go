package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/worker"
	"github.com/rs/zerolog"
)

const jobKind = "probe"

// Request names the image source and whoever waits for its size.
type Request struct {
	Owner  string
	Source string
}

func (r *Request) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	e.Str("owner", r.Owner)
	if level <= zerolog.DebugLevel {
		e.Str("source", r.Source)
	}
}

func (r Request) key() worker.Key {
	return worker.Key(r.Owner + "\x00" + r.Source)
}

// Deliver receives every finished probe. A failed probe carries a zero Size.
type Deliver func(req Request, size Size, err error)

// Service resolves image sizes in the background, at most once at a time per request.
type Service struct {
	resolver *Resolver
	deliver  Deliver
	queue    *worker.Service
}

func NewService(resolver *Resolver, workers int, deliver Deliver) *Service {
	s := &Service{resolver: resolver, deliver: deliver}
	s.queue = worker.NewService("probe", s.step, workers)
	return s
}

// Probe queues req. A request already queued or running is not queued twice.
func (s *Service) Probe(ctx context.Context, req Request) error {
	logg := logging.Enter(ctx, "probe.Service.Probe", map[string]any{"request": &req})
	_, err := s.queue.Submit(worker.Job{
		Key:     req.key(),
		Kind:    jobKind,
		Payload: req,
		Ctx:     logging.Detach(ctx),
	})
	switch {
	case errors.Is(err, worker.ErrDuplicate):
		logging.Exit(logg, "in flight", nil)
		return nil
	case err != nil:
		logging.ExitErr(logg, err)
		return err
	}
	logging.Exit(logg, "queued", nil)
	return nil
}

func (s *Service) Run(ctx context.Context) {
	s.queue.Run(ctx)
}

func (s *Service) Close() {
	s.queue.Close()
}

func (s *Service) step(j *worker.Job) error {
	req, ok := j.Payload.(Request)
	if !ok {
		return fmt.Errorf("unexpected probe payload %T", j.Payload)
	}
	size, err := s.resolver.Resolve(j.Ctx, req.Source)
	s.deliver(req, size, err)
	return err
}
