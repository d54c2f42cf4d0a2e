// Package settings persists the bridge configuration across plugin
// activations. The record is a small CBOR blob stored under one fixed key in
// a host-provided durable key-value store. Storage failures never surface:
// the in-memory state (defaults, or the last applied update) always stands.
package settings

import (
	"errors"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
)

// DefaultServerPort is the port used until a persisted or updated value
// overrides it.
const DefaultServerPort = 3055

// StorageKey is the fixed namespace under which the record is persisted.
const StorageKey = "canvasbridge-settings"

// ErrNoRecord is returned by KV.Get when no record exists under the key.
var ErrNoRecord = errors.New("settings: no record")

// KV is the durable key-value store provided by the host.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Settings is the persisted configuration record.
type Settings struct {
	ServerPort int `cbor:"server_port"`
}

// Update is a partial settings mutation. Nil fields leave the current value
// unchanged.
type Update struct {
	ServerPort *int
}

// Store owns the in-memory settings state and its persistence lifecycle.
// Load once at startup, Update on every inbound update-settings message.
type Store struct {
	mu      sync.Mutex
	kv      KV
	current Settings
	log     zerolog.Logger
}

// NewStore creates a store holding the hardcoded defaults. Call Load before
// announcing settings to the client.
func NewStore(kv KV, log zerolog.Logger) *Store {
	return &Store{
		kv:      kv,
		current: Settings{ServerPort: DefaultServerPort},
		log:     log,
	}
}

// Load reads the persisted record and overwrites the in-memory state when a
// valid server port is present. Read failures and corrupt records are logged
// and the defaults retained. Load never fails and never blocks startup
// beyond the read itself.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			s.log.Warn().Err(err).Msg("settings load failed, keeping defaults")
		}
		return s.current
	}

	var loaded Settings
	if err := cbor.Unmarshal(data, &loaded); err != nil {
		s.log.Warn().Err(err).Msg("settings record corrupt, keeping defaults")
		return s.current
	}

	if loaded.ServerPort > 0 {
		s.current = loaded
	}
	return s.current
}

// Update applies a partial mutation and persists the full current record.
// The in-memory update stands even when persistence fails; the failure is
// logged, never surfaced. An empty partial still persists the current state.
func (s *Store) Update(u Update) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ServerPort != nil {
		s.current.ServerPort = *u.ServerPort
	}

	data, err := cbor.Marshal(s.current)
	if err != nil {
		s.log.Error().Err(err).Msg("settings encode failed, in-memory state stands")
		return s.current
	}
	if err := s.kv.Put(StorageKey, data); err != nil {
		s.log.Error().Err(err).Msg("settings persist failed, in-memory state stands")
	}
	return s.current
}

// Current returns the in-memory settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
