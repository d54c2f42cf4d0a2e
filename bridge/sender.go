package bridge

import (
	"errors"
	"sync"

	"github.com/designfabric/canvasbridge-go/wire"
)

// ErrChannelClosed is returned by Send after the outbound channel has been
// closed by a shutdown.
var ErrChannelClosed = errors.New("bridge: outbound channel closed")

// sender serializes outbound writes. Handler goroutines, the progress
// reporter and the routing loop all emit through the same instance, so the
// encoded frames never interleave and close is race-free.
type sender struct {
	mu     sync.Mutex
	out    chan<- []byte
	closed bool
}

func newSender(out chan<- []byte) *sender {
	return &sender{out: out}
}

// Send encodes and delivers one outbound message.
func (s *sender) Send(msg interface{}) error {
	data, err := wire.EncodeOutbound(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrChannelClosed
	}
	s.out <- data
	return nil
}

// Close closes the outbound channel. Subsequent sends fail with
// ErrChannelClosed instead of panicking.
func (s *sender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.out)
	}
}
