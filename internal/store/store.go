// Package store holds the in-process reactive state that views read from.
// State changes only through named setters; each setter notifies
// subscribers with the mutation name and a snapshot taken after the change.
package store

import (
	"slices"
	"sync"
)

// DefaultSystemOfMeasurement is the unit system used before any profile is loaded.
const DefaultSystemOfMeasurement = "metric"

// SessionStatus is the explicit login state of the session.
type SessionStatus int

const (
	LoggedOut SessionStatus = iota
	LoggedIn
)

func (s SessionStatus) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// LogType describes one farmOS log bundle.
type LogType struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	LabelPlural string `json:"label_plural"`
}

// ErrorRecord is a user-visible error. Message may contain markup.
type ErrorRecord struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Level     string `json:"level"`
	Show      bool   `json:"show"`
}

// State is the full store contents.
type State struct {
	FarmName            string
	FarmURL             string
	Username            string
	Email               string
	UID                 string
	MapboxAPIKey        string
	SystemOfMeasurement string
	LogTypes            []LogType
	IsLoggedIn          bool
	UseGeolocation      bool
	Status              SessionStatus
	Errors              []ErrorRecord
}

// Mutation names, one per setter.
const (
	MutFarmName            = "changeFarmName"
	MutFarmURL             = "changeFarmUrl"
	MutUsername            = "changeUsername"
	MutEmail               = "changeEmail"
	MutUID                 = "changeUid"
	MutMapboxAPIKey        = "changeMapboxAPIKey"
	MutSystemOfMeasurement = "changeSystemOfMeasurement"
	MutLogTypes            = "changeLogTypes"
	MutLoginStatus         = "setLoginStatus"
	MutUseGeolocation      = "setUseGeolocation"
	MutSessionStatus       = "setSessionStatus"
	MutLogError            = "logError"
)

// Listener receives the mutation name and the state after it was applied.
type Listener func(mutation string, s State)

// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// New returns a store with default state.
func New() *Store {
	return &Store{
		state: State{SystemOfMeasurement: DefaultSystemOfMeasurement},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
// Listeners are notified in the order they subscribed.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
	}
}

// commit applies fn under the lock, then notifies listeners outside it.
func (s *Store) commit(mutation string, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(mutation, snap)
	}
}

func (s *Store) SetFarmName(v string) { s.commit(MutFarmName, func(st *State) { st.FarmName = v }) }
func (s *Store) SetFarmURL(v string)  { s.commit(MutFarmURL, func(st *State) { st.FarmURL = v }) }
func (s *Store) SetUsername(v string) { s.commit(MutUsername, func(st *State) { st.Username = v }) }
func (s *Store) SetEmail(v string)    { s.commit(MutEmail, func(st *State) { st.Email = v }) }
func (s *Store) SetUID(v string)      { s.commit(MutUID, func(st *State) { st.UID = v }) }

func (s *Store) SetMapboxAPIKey(v string) {
	s.commit(MutMapboxAPIKey, func(st *State) { st.MapboxAPIKey = v })
}

func (s *Store) SetSystemOfMeasurement(v string) {
	s.commit(MutSystemOfMeasurement, func(st *State) { st.SystemOfMeasurement = v })
}

func (s *Store) SetLogTypes(v []LogType) {
	v = slices.Clone(v)
	s.commit(MutLogTypes, func(st *State) { st.LogTypes = v })
}

func (s *Store) SetLoginStatus(v bool) {
	s.commit(MutLoginStatus, func(st *State) { st.IsLoggedIn = v })
}

func (s *Store) SetUseGeolocation(v bool) {
	s.commit(MutUseGeolocation, func(st *State) { st.UseGeolocation = v })
}

func (s *Store) SetSessionStatus(v SessionStatus) {
	s.commit(MutSessionStatus, func(st *State) { st.Status = v })
}

// LogError appends rec to the error log.
func (s *Store) LogError(rec ErrorRecord) {
	s.commit(MutLogError, func(st *State) { st.Errors = append(st.Errors, rec) })
}

func (st State) clone() State {
	st.LogTypes = slices.Clone(st.LogTypes)
	st.Errors = slices.Clone(st.Errors)
	return st
}
