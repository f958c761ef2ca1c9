// Package auth is the session guard. There is no token and no expiry: the
// user is authenticated exactly when a session record sits under the "user"
// key of the durable medium.
package auth

import (
	"encoding/json"

	"go.uber.org/zap"

	"sdms-server/data"
	"sdms-server/shared"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
	defaultRole     = "Banking Admin"
	defaultName     = "Admin"
)

type Service struct {
	store    data.Store
	username string
	password string
	log      *zap.Logger
}

// NewService builds a guard checking the one literal credential pair. Empty
// username/password fall back to the stock admin credentials.
func NewService(store data.Store, username, password string, log *zap.Logger) *Service {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	return &Service{store: store, username: username, password: password, log: log}
}

// Login reports whether the credentials match. On a match the session record
// is written; on a mismatch nothing changes, so a previously established
// session survives a failed attempt.
func (s *Service) Login(username, password string) bool {
	if username != s.username || password != s.password {
		s.log.Info("login rejected", zap.String("username", username))
		return false
	}

	sess := shared.Session{Username: username, Role: defaultRole, Name: defaultName}
	raw, err := json.Marshal(sess)
	if err != nil {
		return false
	}
	if err := s.store.Set(shared.SessionKey, raw); err != nil {
		s.log.Warn("session write failed", zap.Error(err))
		return false
	}
	s.log.Info("login accepted", zap.String("username", username))
	return true
}

// Logout clears the session record.
func (s *Service) Logout() {
	if err := s.store.Delete(shared.SessionKey); err != nil {
		s.log.Warn("session delete failed", zap.Error(err))
	}
}

// CurrentUser returns the stored session, if any. A record that fails to
// decode is dropped and treated as signed out.
func (s *Service) CurrentUser() (shared.Session, bool) {
	raw, ok := s.store.Get(shared.SessionKey)
	if !ok {
		return shared.Session{}, false
	}
	var sess shared.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		_ = s.store.Delete(shared.SessionKey)
		return shared.Session{}, false
	}
	return sess, true
}

func (s *Service) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}
