package main

import (
	"time"

	"github.com/Adirelle/cmdbase/pkg/events"
	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

type (
	// RootSupervisor runs the services of the bot next to the event loop they share.
	RootSupervisor struct {
		*suture.Supervisor
		Dispatcher *events.AsyncDispatcher
	}
)

var SutureEventLabels = map[suture.EventType]string{
	suture.EventTypeStopTimeout:      "timeout",
	suture.EventTypeServicePanic:     "panic",
	suture.EventTypeServiceTerminate: "terminate",
	suture.EventTypeBackoff:          "backoff",
	suture.EventTypeResume:           "resume",
}

func MakeRootSupervisor(name string) RootSupervisor {
	supervisor := suture.New(name, suture.Spec{
		EventHook:      EventHook,
		FailureBackoff: 15 * time.Second,
		Timeout:        10 * time.Second,
	})
	dispatcher := events.NewAsyncDispatcher()
	supervisor.Add(dispatcher)
	return RootSupervisor{supervisor, dispatcher}
}

// Add starts the service, and subscribes it to events if it is also a handler.
func (s RootSupervisor) Add(svc suture.Service) suture.ServiceToken {
	if handler, isHandler := svc.(events.Handler); isHandler {
		s.Dispatcher.AddHandler(handler)
	}
	log.WithField("service", svc).Debug("supervisor.add")
	return s.Supervisor.Add(svc)
}

func (s RootSupervisor) AddHandler(handler events.Handler) {
	s.Dispatcher.AddHandler(handler)
}

func EventHook(event suture.Event) {
	entry := log.
		WithField("message", event.String()).
		WithFields(log.Fields(event.Map()))
	if event.Type() == suture.EventTypeResume {
		entry.Infof("suture.%s", SutureEventLabels[event.Type()])
		return
	}
	entry.Warnf("suture.%s", SutureEventLabels[event.Type()])
}
