package lead

import (
	"encoding/json"
	"log/slog"

	"github.com/remotescouts/landing/internal/shared"
)

// SessionKey is where the lead state lives inside the visitor session.
const SessionKey = "lead_form"

// Store reads and writes lead State in the visitor session.
type Store struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewStore constructs a Store.
func NewStore(c *Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{catalog: c, logger: logger}
}

// Load returns the visitor's state, or defaults when the session has none
// or holds something unreadable.
func (s *Store) Load(sess *shared.Session) State {
	st := NewState(s.catalog)
	if sess == nil {
		return st
	}
	raw := sess.Get(SessionKey)
	if raw == "" {
		return st
	}
	var stored State
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("discard unreadable lead state", slog.String("session", sess.ID), slog.Any("error", err))
		return st
	}
	switch stored.Status {
	case StatusIdle, StatusSuccess, StatusError:
	default:
		stored.Status = StatusIdle
	}
	NewController(s.catalog, &stored.Form).Normalize()
	return stored
}

// Save writes st into the session.
func (s *Store) Save(sess *shared.Session, st State) error {
	if sess == nil {
		return shared.ErrSessionMissing
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	sess.Set(SessionKey, string(data))
	return nil
}
