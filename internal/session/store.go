// Package session keeps the web front-end's per-session view state in
// memory: the last prompt, its parsed intent and the generated strategies.
// The store exists so the strategy page can render a just-generated strategy
// without a backend re-fetch; nothing here survives a process restart.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

var idRe = regexp.MustCompile(`^[0-9a-f]{32}$`)

// GeneratedKeyPrefix addresses freshly generated strategies that carry no
// backend id yet: gen-0, gen-1, ... by list position.
const GeneratedKeyPrefix = "gen-"

// State is one session's view state. Strategies holds the prompt flow's
// generated set; Adopted holds strategies pulled in from outside the flow
// (library navigation, backend read path) so tuning posts can find them
// without promoting the session to the strategies stage.
type State struct {
	Prompt     string
	Intent     *contract.ParsedIntent
	Strategies []contract.Strategy
	Adopted    map[string]contract.Strategy
}

// Store maps session ids to their state. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// NewID mints a fresh session id.
func NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("session id entropy unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// ValidID reports whether id looks like one of ours; anything else from a
// cookie is discarded and re-minted.
func ValidID(id string) bool {
	return idRe.MatchString(id)
}

// Remember stores the outcome of a successful prompt submission.
func (s *Store) Remember(sid, prompt string, intent contract.ParsedIntent, strategies []contract.Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := intent
	s.sessions[sid] = &State{
		Prompt:     prompt,
		Intent:     &cp,
		Strategies: append([]contract.Strategy(nil), strategies...),
	}
}

// State returns a copy of the session's state.
func (s *Store) State(sid string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[sid]
	if !ok {
		return State{}, false
	}
	out := State{Prompt: st.Prompt, Strategies: append([]contract.Strategy(nil), st.Strategies...)}
	if st.Intent != nil {
		cp := *st.Intent
		out.Intent = &cp
	}
	if len(st.Adopted) > 0 {
		out.Adopted = make(map[string]contract.Strategy, len(st.Adopted))
		for k, v := range st.Adopted {
			out.Adopted[k] = v
		}
	}
	return out, true
}

// Strategy resolves a strategy key for the session: a backend id when the
// strategy has one, or a gen-N positional key for ephemeral ones.
func (s *Store) Strategy(sid, key string) (contract.Strategy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[sid]
	if !ok {
		return contract.Strategy{}, false
	}
	if idx, ok := generatedIndex(key); ok {
		if idx < 0 || idx >= len(st.Strategies) {
			return contract.Strategy{}, false
		}
		return st.Strategies[idx], true
	}
	for _, strat := range st.Strategies {
		if strat.ID == key {
			return strat, true
		}
	}
	strat, ok := st.Adopted[key]
	return strat, ok
}

// UpdateStrategy replaces the stored strategy under key with a tuned working
// copy (after an accepted optimization or a backtest merge).
func (s *Store) UpdateStrategy(sid, key string, strategy contract.Strategy) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sid]
	if !ok {
		return false
	}
	if idx, ok := generatedIndex(key); ok {
		if idx < 0 || idx >= len(st.Strategies) {
			return false
		}
		st.Strategies[idx] = strategy
		return true
	}
	for i := range st.Strategies {
		if st.Strategies[i].ID == key {
			st.Strategies[i] = strategy
			return true
		}
	}
	if _, ok := st.Adopted[key]; ok {
		st.Adopted[key] = strategy
		return true
	}
	return false
}

// Adopt parks a strategy fetched from outside the session (library page or
// the backend read path) so subsequent posts can tune it. Adopted strategies
// live beside the prompt flow's generated set, never in it: viewing a saved
// strategy must not move the session to the strategies stage. Returns the
// navigation key the strategy is now reachable under.
func (s *Store) Adopt(sid string, strategy contract.Strategy) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sid]
	if !ok {
		st = &State{}
		s.sessions[sid] = st
	}
	if st.Adopted == nil {
		st.Adopted = make(map[string]contract.Strategy)
	}
	key := strategy.ID
	if key == "" {
		key = NewID()
	}
	st.Adopted[key] = strategy
	return key
}

// Clear discards a session's state; the edit/reset action lands here.
func (s *Store) Clear(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

// Key returns the navigation key for the i-th strategy in the session list.
func Key(strategy contract.Strategy, i int) string {
	if strategy.ID != "" {
		return strategy.ID
	}
	return GeneratedKeyPrefix + strconv.Itoa(i)
}

func generatedIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, GeneratedKeyPrefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return idx, true
}
