// Package eventing provides the in-process implementations of the domain's
// Eventing contract. Delivery is synchronous: Raise invokes every matching
// listener before it returns, so slow listeners block the operation that
// raised the event.
package eventing

import (
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

type subscription struct {
	filter domain.Topic
	fn     func(domain.Event)
}

// InProcessEventing dispatches events to listeners registered in the same
// process. Listeners are invoked in registration order, and each invocation
// is isolated: a panicking listener is recovered and logged, and the
// remaining listeners still run.
type InProcessEventing struct {
	subscriptions []subscription
	log           *zap.Logger
}

func NewInProcessEventing(log *zap.Logger) *InProcessEventing {
	return &InProcessEventing{
		log: log.With(zap.String("component", "eventing")),
	}
}

func (e *InProcessEventing) Raise(event domain.Event) {
	for _, sub := range e.subscriptions {
		if event.Topic().Matches(sub.filter) {
			e.invoke(sub, event)
		}
	}
}

func (e *InProcessEventing) Receive(filter domain.Topic, fn func(domain.Event)) {
	e.subscriptions = append(e.subscriptions, subscription{
		filter: filter,
		fn:     fn,
	})
}

func (e *InProcessEventing) invoke(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Listener panicked",
				zap.String("topic", string(event.Topic())),
				zap.String("filter", string(sub.filter)),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()
	sub.fn(event)
}
