package events

import (
	"github.com/apex/log"
)

type (
	// Event is anything that can be pushed through the loop. Fields are used for logging.
	Event interface {
		log.Fielder
	}

	Handler interface {
		HandleEvent(Event)
	}

	HandlerFunc func(Event)
)

func (f HandlerFunc) HandleEvent(ev Event) {
	f(ev)
}

// OnEvent adapts a function that only cares about one kind of event.
func OnEvent[E Event](handler func(E)) HandlerFunc {
	return func(ev Event) {
		if e, ok := ev.(E); ok {
			handler(e)
		}
	}
}
