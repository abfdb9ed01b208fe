package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"rollcall/internal/common"
	"rollcall/pkg/tracker"

	"github.com/google/uuid"
)

// MinimumRemaining is the least validity a persisted session must have
// left to be restored, anything closer to expiry is discarded
const MinimumRemaining = 60 * time.Second

type StoreOpts struct {
	// Slots is where the session is persisted, required
	Slots SlotStore

	// Clock defaults to the wall clock
	Clock Clock

	// ServiceLogs receives the store's logs, discarded when nil
	ServiceLogs chan<- common.ServiceLog
}

// Store owns the current session and keeps memory, the persisted slots
// and the expiry timer in agreement
type Store struct {
	clock       Clock
	expiry      *ExpiryScheduler
	serviceLogs chan<- common.ServiceLog
	slots       SlotStore

	mutex   sync.Mutex
	current *Session

	listenersMutex sync.Mutex
	listeners      map[int]func(*Session)
	listenerIndex  int
}

func NewStore(opts StoreOpts) (*Store, error) {
	if opts.Slots == nil {
		return nil, errors.New("failed to receive a slot store")
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	var serviceLogs chan<- common.ServiceLog = common.GetNoopServiceLog()
	if opts.ServiceLogs != nil {
		serviceLogs = opts.ServiceLogs
	}
	return &Store{
		clock:       clock,
		expiry:      NewExpiryScheduler(clock),
		serviceLogs: serviceLogs,
		slots:       opts.Slots,
		listeners:   map[int]func(*Session){},
	}, nil
}

// Restore loads the persisted session. Nothing is returned when there
// is none, when it is unreadable, or when it has MinimumRemaining or
// less left, and in the last two cases the slots are cleared. A session
// already held in memory takes precedence over the persisted one
func (s *Store) Restore() (*Session, error) {
	s.mutex.Lock()
	if s.current != nil {
		current := s.current
		s.mutex.Unlock()
		return current, nil
	}
	slots, err := s.slots.Load()
	if err != nil {
		s.mutex.Unlock()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if slots == nil {
		s.mutex.Unlock()
		return nil, nil
	}
	var claims Claims
	if err := json.Unmarshal(slots.UserData, &claims); err != nil {
		s.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "discarding persisted session with unreadable %s: %s", SlotUserData, err)
		clearErr := s.slots.Clear()
		s.mutex.Unlock()
		return nil, clearErr
	}
	remaining := claims.ExpiresAt.Sub(s.clock.Now())
	if remaining <= MinimumRemaining {
		s.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "discarding persisted session for user[%s] with %s left", claims.Subject, remaining.Truncate(time.Second))
		clearErr := s.slots.Clear()
		s.mutex.Unlock()
		return nil, clearErr
	}
	restored := &Session{
		Id:     uuid.New().String(),
		Token:  slots.Token,
		Claims: claims,
	}
	s.current = restored
	s.scheduleLocked(restored)
	s.mutex.Unlock()

	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "restored session[%s] for user[%s] expiring in %s", restored.Id, claims.Subject, remaining.Truncate(time.Second))
	s.notify(restored)
	return restored, nil
}

// Login replaces the current session with one for `token`. Claims that
// have already expired are refused with ErrInvalidCredential and leave
// the current session untouched
func (s *Store) Login(token string, claims Claims) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidCredential)
	}
	if !claims.ExpiresAt.After(s.clock.Now()) {
		return nil, fmt.Errorf("%w: token expired at %s", ErrInvalidCredential, claims.ExpiresAt.Format(time.RFC3339))
	}
	userData, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to encode claims: %w", err)
	}

	s.mutex.Lock()
	if err := s.slots.Save(Slots{Token: token, UserData: userData}); err != nil {
		s.mutex.Unlock()
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	created := &Session{
		Id:     uuid.New().String(),
		Token:  token,
		Claims: claims,
	}
	s.current = created
	s.scheduleLocked(created)
	s.mutex.Unlock()

	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "logged in session[%s] for user[%s] until %s", created.Id, claims.Subject, claims.ExpiresAt.Format(time.RFC3339))
	s.notify(created)
	return created, nil
}

// LoginWithToken decodes the claims from `token` and logs in with them
func (s *Store) LoginWithToken(token string) (*Session, error) {
	claims, err := ClaimsFromToken(token)
	if err != nil {
		return nil, err
	}
	return s.Login(token, *claims)
}

// Logout clears the session from memory and storage and cancels the
// expiry timer. Logging out without a session is not an error
func (s *Store) Logout() error {
	return s.logout("")
}

// Current returns the live session or nil
func (s *Store) Current() *Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current
}

// IsCurrent reports whether `sessionId` identifies the live session
func (s *Store) IsCurrent(sessionId string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current != nil && s.current.Id == sessionId
}

// ExpiryPending reports whether an expiry timer is armed
func (s *Store) ExpiryPending() bool {
	return s.expiry.Pending()
}

// Subscribe registers `listener` to be called with the new session on
// every login and restore, and with nil on logout or expiry
func (s *Store) Subscribe(listener func(*Session)) (unsubscribe func()) {
	s.listenersMutex.Lock()
	defer s.listenersMutex.Unlock()
	index := s.listenerIndex
	s.listenerIndex++
	s.listeners[index] = listener
	return func() {
		s.listenersMutex.Lock()
		defer s.listenersMutex.Unlock()
		delete(s.listeners, index)
	}
}

// logout clears the session, when `onlyId` is set the session is only
// cleared if it is still the one identified by `onlyId`
func (s *Store) logout(onlyId string) error {
	s.mutex.Lock()
	if onlyId != "" && (s.current == nil || s.current.Id != onlyId) {
		s.mutex.Unlock()
		return nil
	}
	s.expiry.Cancel()
	previous := s.current
	s.current = nil
	err := s.slots.Clear()
	s.mutex.Unlock()

	if err != nil {
		err = fmt.Errorf("failed to clear persisted session: %w", err)
	}
	if previous != nil {
		s.notify(nil)
	}
	return err
}

func (s *Store) scheduleLocked(target *Session) {
	sessionId := target.Id
	s.expiry.Schedule(target.Claims.ExpiresAt, func() {
		s.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "session[%s] expired", sessionId)
		if err := s.logout(sessionId); err != nil {
			s.serviceLogs <- common.ServiceLogf(common.LogLevelError, "failed to clear expired session[%s]: %s", sessionId, err)
		}
	})
}

func (s *Store) notify(current *Session) {
	s.listenersMutex.Lock()
	listeners := make([]func(*Session), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.listenersMutex.Unlock()
	for _, listener := range listeners {
		listener(current)
	}
}

// Settle applies the rules every call made under `sess` shares once its
// response is in. A response for a session that is no longer current is
// discarded as ErrStaleResponse, a rejected credential logs that
// session out, and tracker errors are folded into this package's errors
func (s *Store) Settle(sess *Session, err error) error {
	if !s.IsCurrent(sess.Id) {
		return ErrStaleResponse
	}
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, tracker.ErrorAuthRequired):
		if logoutErr := s.logout(sess.Id); logoutErr != nil {
			s.serviceLogs <- common.ServiceLogf(common.LogLevelError, "failed to clear rejected session[%s]: %s", sess.Id, logoutErr)
		}
		return fmt.Errorf("%w: %w", ErrAuth, err)
	case errors.Is(err, tracker.ErrorForbiddenRole):
		return fmt.Errorf("%w: %w", ErrAuthorization, err)
	case errors.Is(err, tracker.ErrorConnection), errors.Is(err, tracker.ErrorUnexpectedResponse):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return err
}
