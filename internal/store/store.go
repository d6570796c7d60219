// Package store owns the todo list and keeps the on-disk copy in step.
package store

import (
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/errika/internal/model"
	"github.com/idilsaglam/errika/internal/store/jsonstore"
	"github.com/idilsaglam/errika/internal/validate"
)

// Backend reads and writes the raw todos document.
type Backend interface {
	Read() ([]byte, error)
	Write(b []byte) error
}

// quarantiner is implemented by backends that can move a bad file aside.
type quarantiner interface {
	Quarantine(at time.Time) (string, error)
}

// Stats summarises completion.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Store is the authoritative todo list. Every mutation is saved before it
// returns. If only the save fails, the mutation's result is returned along
// with a *WriteError.
type Store struct {
	mu      sync.Mutex
	backend Backend
	path    string
	items   []*model.Item
	nextID  int
	blocked error // set while an unloadable file sits at path
	log     zerolog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides time.Now for creation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBackend replaces the file backend.
func WithBackend(b Backend) Option {
	return func(s *Store) { s.backend = b }
}

// New returns an empty store persisting to the JSON file at path.
// Call Load to pick up earlier sessions.
func New(path string, opts ...Option) *Store {
	s := &Store{
		backend: jsonstore.New(path),
		path:    path,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing file
// is a fresh start and returns nil. An unreadable or malformed file leaves
// the store empty and returns a *CorruptionError. The bad file is moved
// aside when the backend can do that; otherwise saves fail with
// ErrKeepFile until a later Load succeeds.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items, s.nextID, s.blocked = nil, 0, nil

	b, err := s.backend.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Str("path", s.path).Msg("no todos file yet")
			return nil
		}
		ce := s.setAside(err)
		s.log.Error().Err(err).Str("path", s.path).Str("backup", ce.Backup).Msg("todos file unreadable, starting empty")
		return ce
	}

	doc, err := jsonstore.Decode(b, s.now())
	if err != nil {
		ce := s.setAside(err)
		s.log.Error().Err(err).Str("path", s.path).Str("backup", ce.Backup).Msg("todos file corrupt, starting empty")
		return ce
	}

	s.items = make([]*model.Item, 0, len(doc.Items))
	for i := range doc.Items {
		it := doc.Items[i]
		s.items = append(s.items, &it)
	}
	s.nextID = doc.NextID

	ev := s.log.Info().Str("path", s.path).Int("items", len(s.items))
	if doc.Legacy {
		ev = ev.Bool("legacy", true)
	}
	ev.Msg("todos loaded")
	if doc.Skipped > 0 {
		s.log.Warn().Int("count", doc.Skipped).Msg("dropped invalid todos")
	}
	if doc.Renumbered > 0 {
		s.log.Warn().Int("count", doc.Renumbered).Msg("gave duplicate todo ids fresh numbers")
	}
	return nil
}

// setAside tries to move the file that failed to load out of the way and
// blocks saves if it stays put.
func (s *Store) setAside(cause error) *CorruptionError {
	ce := &CorruptionError{Path: s.path, Err: cause}
	q, ok := s.backend.(quarantiner)
	if !ok {
		s.blocked = ErrKeepFile
		return ce
	}
	backup, err := q.Quarantine(s.now())
	if err != nil {
		s.log.Warn().Err(err).Msg("could not move bad todos file aside")
		s.blocked = errors.Wrap(ErrKeepFile, err.Error())
		return ce
	}
	ce.Backup = backup
	return ce
}

// Save writes the whole list. On failure memory is left as is and a
// *WriteError is returned.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.blocked != nil {
		return &WriteError{Path: s.path, Err: s.blocked}
	}
	items := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, *it)
	}
	b, err := jsonstore.Encode(items, s.nextID)
	if err == nil {
		err = s.backend.Write(b)
	}
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("saving todos failed")
		return &WriteError{Path: s.path, Err: err}
	}
	s.log.Debug().Str("path", s.path).Int("items", len(items)).Msg("todos saved")
	return nil
}

// Add appends a new pending todo. Blank text is rejected with ErrEmptyText
// and nothing changes. Unknown priorities become the default. Once every id
// below jsonstore.MaxID was handed out, Add fails with ErrIDsExhausted.
func (s *Store) Add(text string, p model.Priority) (*model.Item, error) {
	text, err := validate.Text(text)
	if err != nil {
		return nil, errors.Wrap(ErrEmptyText, err.Error())
	}
	if !p.Valid() {
		p = model.DefaultPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextID >= jsonstore.MaxID {
		return nil, ErrIDsExhausted
	}
	it := &model.Item{
		ID:       s.nextID,
		Text:     text,
		Priority: p,
		Created:  s.now(),
	}
	s.nextID++
	s.items = append(s.items, it)
	s.log.Debug().Int("id", it.ID).Str("priority", string(p)).Msg("todo added")

	out := *it
	return &out, s.saveLocked()
}

// Toggle sets the completion flag. Unknown ids are ignored.
func (s *Store) Toggle(id int, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.find(id)
	if it == nil {
		s.log.Debug().Int("id", id).Msg("toggle: no such todo")
		return nil
	}
	it.Completed = completed
	return s.saveLocked()
}

// Edit replaces the text of a todo. It reports false without changing
// anything when the id is unknown or the new text is blank.
func (s *Store) Edit(id int, text string) (bool, error) {
	text, err := validate.Text(text)
	if err != nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.find(id)
	if it == nil {
		return false, nil
	}
	it.Text = text
	return true, s.saveLocked()
}

// Delete removes a todo and reports whether it was there.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.log.Debug().Int("id", id).Msg("todo deleted")
			return true, s.saveLocked()
		}
	}
	return false, nil
}

// Get returns a copy of the todo with id.
func (s *Store) Get(id int) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it := s.find(id); it != nil {
		return *it, true
	}
	return model.Item{}, false
}

// List returns copies of all todos in insertion order.
func (s *Store) List() []*model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Item, 0, len(s.items))
	for _, it := range s.items {
		c := *it
		out = append(out, &c)
	}
	return out
}

// Stats counts total, completed and pending todos.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	st.Total = len(s.items)
	for _, it := range s.items {
		if it.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

func (s *Store) find(id int) *model.Item {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}
