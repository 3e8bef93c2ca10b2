package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

type (
	Dispatcher interface {
		DispatchEvent(Event) error
	}

	// AsyncDispatcher delivers events to its handlers one at a time, from the goroutine running Serve.
	AsyncDispatcher struct {
		ctl         chan command
		handlers    []Handler
		SendTimeout time.Duration
	}

	command interface{}

	addCommand      struct{ Handler }
	dispatchCommand struct{ Event }
)

const DefaultSendTimeout = 5 * time.Second

var (
	ErrDispatcherBusy = errors.New("event dispatcher is busy")

	_ Dispatcher     = (*AsyncDispatcher)(nil)
	_ Handler        = (*AsyncDispatcher)(nil)
	_ suture.Service = (*AsyncDispatcher)(nil)
)

func NewAsyncDispatcher() *AsyncDispatcher {
	return &AsyncDispatcher{ctl: make(chan command, 20), SendTimeout: DefaultSendTimeout}
}

func (d *AsyncDispatcher) Serve(ctx context.Context) error {
	for {
		select {
		case cmd := <-d.ctl:
			d.handleCommand(cmd)
		case <-ctx.Done():
			return nil
		}
	}
}

func (d *AsyncDispatcher) GoString() string {
	return fmt.Sprintf("Dispatcher(%d, %d/%d)", len(d.handlers), len(d.ctl), cap(d.ctl))
}

func (d *AsyncDispatcher) String() string {
	return "event dispatcher"
}

func (d *AsyncDispatcher) handleCommand(cmd command) {
	switch c := cmd.(type) {
	case addCommand:
		d.handlers = append(d.handlers, c.Handler)
	case dispatchCommand:
		for _, handler := range d.handlers {
			handler.HandleEvent(c.Event)
		}
	}
}

// DispatchEvent queues the event. It fails when the loop does not accept it within SendTimeout.
func (d *AsyncDispatcher) DispatchEvent(event Event) error {
	if err := utils.SendWithTimeout[command](d.ctl, dispatchCommand{event}, d.SendTimeout); err != nil {
		log.WithFields(event).WithError(err).Error("events.dispatch")
		return fmt.Errorf("%w: %s", ErrDispatcherBusy, err)
	}
	return nil
}

func (d *AsyncDispatcher) HandleEvent(event Event) {
	_ = d.DispatchEvent(event)
}

func (d *AsyncDispatcher) AddHandler(handler Handler) {
	d.ctl <- addCommand{handler}
}
