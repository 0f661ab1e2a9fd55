package simulation

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/kinemove/oerror"
	"github.com/sirupsen/logrus"
)

// Task is a unit of work run once per simulation tick.
type Task interface {
	Tick(tick int64, dt float64)
}

// TaskFunc adapts a function to a Task.
type TaskFunc func(tick int64, dt float64)

// Tick ...
func (f TaskFunc) Tick(tick int64, dt float64) {
	f(tick, dt)
}

type node struct {
	name  string
	task  Task
	after []string
}

// Scheduler ticks tasks at a fixed step in an order that respects their prerequisites. Tasks without an
// ordering constraint between them run in the order they were added, so a schedule is fully
// deterministic.
type Scheduler struct {
	log *logrus.Logger

	nodes *orderedmap.OrderedMap[string, *node]
	order []*node
	dirty bool

	tick int64
}

// NewScheduler returns an empty scheduler. A nil logger discards output.
func NewScheduler(log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Scheduler{
		log:   log,
		nodes: orderedmap.NewOrderedMap[string, *node](),
	}
}

// Add registers a task under a unique name. The task runs after every task named in after, which do not
// need to be registered yet.
func (s *Scheduler) Add(name string, t Task, after ...string) error {
	if _, ok := s.nodes.Get(name); ok {
		return oerror.New("task %q is already scheduled", name)
	}
	s.nodes.Set(name, &node{name: name, task: t, after: after})
	s.dirty = true
	return nil
}

// Remove unregisters a task, returning true if it existed.
func (s *Scheduler) Remove(name string) bool {
	if !s.nodes.Delete(name) {
		return false
	}
	s.dirty = true
	return true
}

// CurrentTick returns the number of ticks run so far.
func (s *Scheduler) CurrentTick() int64 {
	return s.tick
}

// Order returns the task names in the order they run.
func (s *Scheduler) Order() ([]string, error) {
	if err := s.sort(); err != nil {
		return nil, err
	}
	names := make([]string, len(s.order))
	for i, n := range s.order {
		names[i] = n.name
	}
	return names, nil
}

// sort orders the nodes topologically, always picking the earliest added ready node next.
func (s *Scheduler) sort() error {
	if !s.dirty {
		return nil
	}
	pending := make(map[string]int, s.nodes.Len())
	dependents := make(map[string][]string, s.nodes.Len())
	for el := s.nodes.Front(); el != nil; el = el.Next() {
		n := el.Value
		for _, dep := range n.after {
			if _, ok := s.nodes.Get(dep); !ok {
				return oerror.New("task %q runs after unknown task %q", n.name, dep)
			}
			pending[n.name]++
			dependents[dep] = append(dependents[dep], n.name)
		}
	}

	order := make([]*node, 0, s.nodes.Len())
	done := make(map[string]bool, s.nodes.Len())
	for len(order) < s.nodes.Len() {
		var next *node
		for el := s.nodes.Front(); el != nil; el = el.Next() {
			if !done[el.Key] && pending[el.Key] == 0 {
				next = el.Value
				break
			}
		}
		if next == nil {
			return oerror.New("task prerequisites form a cycle")
		}
		done[next.name] = true
		order = append(order, next)
		for _, d := range dependents[next.name] {
			pending[d]--
		}
	}
	s.order, s.dirty = order, false
	s.log.Debugf("simulation: scheduled %d tasks", len(order))
	return nil
}

// Step runs every task once with the given step and advances the tick counter. A task that panics stops
// the step and is reported as an error.
func (s *Scheduler) Step(dt float64) error {
	if err := s.sort(); err != nil {
		return err
	}
	for _, n := range s.order {
		if err := s.run(n, dt); err != nil {
			return err
		}
	}
	s.tick++
	return nil
}

// Run steps the scheduler ticks times or until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, dt float64, ticks int64) error {
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) run(n *node, dt float64) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = oerror.New("task %q panicked on tick %d: %v", n.name, s.tick, v)
			s.log.Errorf("simulation: %v", err)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("task", n.name)
				scope.SetTag("tick", strconv.FormatInt(s.tick, 10))
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()
	n.task.Tick(s.tick, dt)
	return nil
}
