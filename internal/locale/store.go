// Package locale holds the active display language of the showcase and its string table.
//
// The store never mutates a table in place: every change publishes a new immutable Snapshot,
// so a reader always sees one language's table in full and never a mix of two.
package locale

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Tag is one of the two supported display languages.
type Tag uint8

const (
	// EN is English, the default.
	EN Tag = iota
	// PT is Brazilian Portuguese.
	PT
)

// Tags returns every supported tag in canonical order.
func Tags() []Tag {
	return []Tag{EN, PT}
}

// Language returns the BCP 47 tag for t.
func (t Tag) Language() language.Tag {
	if t == PT {
		return language.BrazilianPortuguese
	}
	return language.English
}

func (t Tag) String() string {
	return t.Language().String()
}

// Other returns the tag a toggle switches to.
func (t Tag) Other() Tag {
	if t == EN {
		return PT
	}
	return EN
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.BrazilianPortuguese})

// Negotiate picks the supported tag closest to a user preference such as "pt-PT", "pt_BR.UTF-8" or
// an Accept-Language list. Anything unrecognized falls back to EN.
//
// Parameters:
//   - preference: a language preference string
//
// Returns:
//   - Tag: the best supported tag
func Negotiate(preference string) Tag {
	if preference == "" {
		return EN
	}
	// POSIX locale names carry an encoding suffix and use '_' as separator.
	if i := strings.IndexByte(preference, '.'); i >= 0 {
		preference = preference[:i]
	}
	preference = strings.ReplaceAll(preference, "_", "-")

	prefs, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(prefs) == 0 {
		return EN
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return EN
	}
	return Tags()[idx]
}

// Snapshot is an immutable view of the active language and its table.
type Snapshot struct {
	Tag   Tag
	Table Table
}

// T looks a key up in the snapshot's table. Unknown keys render as the key itself.
//
// Parameters:
//   - key: the dotted message key
//
// Returns:
//   - string: the localized string
func (s *Snapshot) T(key string) string {
	if v, ok := s.Table[key]; ok {
		return v
	}
	return key
}

// Store publishes the active Snapshot. Reads are lock-free; writers are serialized.
type Store struct {
	catalogs Catalogs
	current  atomic.Pointer[Snapshot]
	logger   *zap.Logger

	mu          sync.Mutex
	subscribers []func(*Snapshot)
}

// NewStore creates a store over the given catalogs, starting in the given language.
//
// Parameters:
//   - catalogs: one table per supported tag
//   - initial: the starting language
//   - logger: the logger for language changes, or nil
//
// Returns:
//   - *Store: the store
func NewStore(catalogs Catalogs, initial Tag, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{catalogs: catalogs, logger: logger}
	s.current.Store(&Snapshot{Tag: initial, Table: catalogs[initial]})
	return s
}

// Snapshot returns the active snapshot. The returned value is never modified afterwards.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Tag returns the active language.
func (s *Store) Tag() Tag {
	return s.current.Load().Tag
}

// T looks a key up in the active table.
func (s *Store) T(key string) string {
	return s.current.Load().T(key)
}

// Toggle switches to the other language and notifies subscribers.
//
// Returns:
//   - *Snapshot: the newly active snapshot
func (s *Store) Toggle() *Snapshot {
	s.mu.Lock()
	next, subs := s.setLocked(s.current.Load().Tag.Other())
	s.mu.Unlock()
	notify(subs, next)
	return next
}

// Set activates the given language. Setting the active language is a no-op that still returns the snapshot.
//
// Parameters:
//   - tag: the language to activate
//
// Returns:
//   - *Snapshot: the active snapshot
func (s *Store) Set(tag Tag) *Snapshot {
	s.mu.Lock()
	if cur := s.current.Load(); cur.Tag == tag {
		s.mu.Unlock()
		return cur
	}
	next, subs := s.setLocked(tag)
	s.mu.Unlock()
	notify(subs, next)
	return next
}

// Subscribe registers fn to be called with every newly published snapshot.
//
// Parameters:
//   - fn: the callback, invoked on the goroutine that changed the language after the store is unlocked,
//     so it may call Set or Toggle itself
func (s *Store) Subscribe(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// setLocked publishes tag and returns the subscribers to notify once s.mu is released.
func (s *Store) setLocked(tag Tag) (*Snapshot, []func(*Snapshot)) {
	next := &Snapshot{Tag: tag, Table: s.catalogs[tag]}
	s.current.Store(next)
	s.logger.Info("language changed", zap.Stringer("locale", tag))
	return next, slices.Clone(s.subscribers)
}

func notify(subs []func(*Snapshot), snap *Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
