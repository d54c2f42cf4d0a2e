// Package bridge runs the channel adapter between the host-side message
// channel and the command dispatcher. One routing goroutine consumes inbound
// messages in order; execute-command bodies run on their own goroutines, so
// terminal envelopes leave in settlement order while reception stays ordered.
package bridge

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/designfabric/canvasbridge-go/dispatch"
	"github.com/designfabric/canvasbridge-go/progress"
	"github.com/designfabric/canvasbridge-go/settings"
	"github.com/designfabric/canvasbridge-go/wire"
)

// Config assembles an adapter.
type Config struct {
	// In carries encoded client → bridge messages. Closing it shuts the
	// adapter down the same way a close-plugin message does.
	In <-chan []byte
	// Out carries encoded bridge → client messages. The adapter owns it and
	// closes it on shutdown.
	Out chan<- []byte
	// Registry is the closed command table.
	Registry *dispatch.Registry
	// Store persists settings across activations.
	Store *settings.Store
	// Log receives routing diagnostics.
	Log zerolog.Logger
	// Notify, when set, receives notify message texts. Optional.
	Notify func(message string)
}

// Adapter is the bridge runtime. Create one per activation with New, drive it
// with Run, and announce host (re)activation with SignalRun.
type Adapter struct {
	in         <-chan []byte
	sender     *sender
	dispatcher *dispatch.Dispatcher
	store      *settings.Store
	log        zerolog.Logger
	notify     func(message string)

	wg sync.WaitGroup
}

// New assembles the adapter: outbound sender, progress reporter, dispatcher.
func New(cfg Config) *Adapter {
	s := newSender(cfg.Out)
	reporter := progress.NewReporter(s, cfg.Log)
	return &Adapter{
		in:         cfg.In,
		sender:     s,
		dispatcher: dispatch.NewDispatcher(cfg.Registry, reporter),
		store:      cfg.Store,
		log:        cfg.Log,
		notify:     cfg.Notify,
	}
}

// Run loads settings, announces them, then routes inbound messages until a
// close-plugin message arrives, the inbound channel closes, or the context is
// cancelled. In-flight command handlers always run to settlement before the
// outbound channel closes; exactly one terminal envelope leaves per
// execute-command id.
func (a *Adapter) Run(ctx context.Context) error {
	loaded := a.store.Load()
	if err := a.sender.Send(wire.NewInitSettings(loaded.ServerPort)); err != nil {
		return err
	}
	a.log.Info().Int("serverPort", loaded.ServerPort).Msg("bridge running")

	for {
		select {
		case <-ctx.Done():
			a.shutdown("context cancelled")
			return ctx.Err()

		case data, ok := <-a.in:
			if !ok {
				a.shutdown("inbound channel closed")
				return nil
			}
			msg, err := wire.DecodeInbound(data)
			if err != nil {
				a.log.Warn().Err(err).Msg("skipping malformed inbound message")
				continue
			}
			if done := a.route(ctx, msg); done {
				return nil
			}
		}
	}
}

// route handles one decoded message. Returns true when routing must stop.
func (a *Adapter) route(ctx context.Context, msg *wire.Inbound) bool {
	switch msg.Type {
	case wire.TypeUpdateSettings:
		port := msg.ServerPort
		updated := a.store.Update(settings.Update{ServerPort: &port})
		a.log.Info().Int("serverPort", updated.ServerPort).Msg("settings updated")

	case wire.TypeNotify:
		a.log.Info().Str("message", msg.Message).Msg("notify")
		if a.notify != nil {
			a.notify(msg.Message)
		}

	case wire.TypeClosePlugin:
		a.shutdown("close-plugin received")
		return true

	case wire.TypeExecuteCommand:
		a.wg.Add(1)
		go a.execute(ctx, msg)
	}
	return false
}

// execute runs one command to settlement and emits its terminal envelope.
func (a *Adapter) execute(ctx context.Context, msg *wire.Inbound) {
	defer a.wg.Done()

	result, err := a.dispatcher.Dispatch(ctx, msg.ID, msg.Command, msg.Params)
	if err != nil {
		a.log.Debug().Str("id", msg.ID).Str("command", msg.Command).Err(err).Msg("command failed")
		if sendErr := a.sender.Send(wire.NewCommandError(msg.ID, err.Error())); sendErr != nil {
			a.log.Error().Err(sendErr).Str("id", msg.ID).Msg("failed to emit error envelope")
		}
		return
	}
	if sendErr := a.sender.Send(wire.NewCommandResult(msg.ID, result)); sendErr != nil {
		a.log.Error().Err(sendErr).Str("id", msg.ID).Msg("failed to emit result envelope")
	}
}

// shutdown waits for in-flight handlers and closes the outbound channel.
func (a *Adapter) shutdown(reason string) {
	a.wg.Wait()
	a.sender.Close()
	a.log.Info().Str("reason", reason).Msg("bridge stopped")
}

// SignalRun emits the unsolicited auto-connect announcement. The host calls
// this on (re)activation so a connected client can resynchronize without
// polling.
func (a *Adapter) SignalRun() error {
	return a.sender.Send(wire.NewAutoConnect())
}
