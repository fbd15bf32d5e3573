package eventing

import "github.com/atherlangga/dddtix/internal/domain"

// CompositeEventing fans every Raise and Receive out to a set of backends,
// letting the model publish to, say, the in-process bus and a message broker
// at the same time without knowing about either.
type CompositeEventing struct {
	backends []domain.Eventing
}

func NewCompositeEventing(backends ...domain.Eventing) *CompositeEventing {
	return &CompositeEventing{backends: backends}
}

func (e *CompositeEventing) Add(backend domain.Eventing) {
	e.backends = append(e.backends, backend)
}

func (e *CompositeEventing) Raise(event domain.Event) {
	for _, backend := range e.backends {
		backend.Raise(event)
	}
}

func (e *CompositeEventing) Receive(filter domain.Topic, fn func(domain.Event)) {
	for _, backend := range e.backends {
		backend.Receive(filter, fn)
	}
}
