// Package session owns the authenticated identity for the current process:
// restoring it from local storage at startup, establishing it from a raw
// identity token, and clearing it on logout.
package session

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/models"
	"github.com/bigprints/docgen/internal/policy"
)

// Storage keys. Five independent string values with no versioning; writes
// are not grouped, so Restore must treat any incomplete set as no session.
const (
	keyEmail   = "userEmail"
	keyToken   = "googleToken"
	keyBranch  = "branch"
	keyName    = "userName"
	keyPicture = "userPicture"
)

// KeyValue is the persistent string store backing a session.
// A missing key reads as the empty string.
type KeyValue interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// Revoker disables auto sign-in with the identity provider on logout.
type Revoker interface {
	DisableAutoSelect() error
}

// Store holds the process-wide session. Restore runs once at startup;
// Establish and Clear are the only mutators.
type Store struct {
	kv      KeyValue
	allowed policy.Table
	revoker Revoker // optional
	log     *zap.Logger

	user *models.AuthUser
}

// New constructs a Store over the given key/value storage and allow-list.
// revoker may be nil when no identity-provider SDK is attached.
func New(kv KeyValue, allowed policy.Table, revoker Revoker, log *zap.Logger) *Store {
	return &Store{kv: kv, allowed: allowed, revoker: revoker, log: log}
}

// User returns the current identity, or nil when signed out.
func (s *Store) User() *models.AuthUser {
	return s.user
}

// Restore rebuilds the identity from storage. Email, token and branch must
// all be present; otherwise it reports no session and leaves storage alone.
// The persisted token is trusted as-is: no expiry or signature check.
func (s *Store) Restore() *models.AuthUser {
	email := s.kv.Get(keyEmail)
	token := s.kv.Get(keyToken)
	branch := s.kv.Get(keyBranch)

	if email == "" || token == "" || branch == "" {
		return nil
	}

	name := s.kv.Get(keyName)
	if name == "" {
		name = localPart(email)
	}

	s.user = &models.AuthUser{
		Email:   email,
		Name:    name,
		Picture: s.kv.Get(keyPicture),
		Branch:  branch,
	}
	s.log.Info("session restored", zap.String("email", email), zap.String("branch", branch))
	return s.user
}

// Establish decodes the raw identity token, gates the email through the
// allow-list and persists the resulting identity. On any failure the
// existing session, in memory and in storage, is left untouched.
func (s *Store) Establish(rawIDToken string) (*models.AuthUser, error) {
	claims, err := DecodeIDToken(rawIDToken)
	if err != nil {
		return nil, err
	}

	branch, err := s.allowed.ResolveBranch(claims.Email)
	if err != nil {
		s.log.Warn("sign-in rejected", zap.String("email", claims.Email))
		return nil, fmt.Errorf("establish session: %w", err)
	}

	user := &models.AuthUser{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Branch:  branch,
	}
	if user.Name == "" {
		user.Name = localPart(user.Email)
	}

	s.kv.Set(keyEmail, user.Email)
	s.kv.Set(keyToken, rawIDToken)
	s.kv.Set(keyBranch, user.Branch)
	s.kv.Set(keyName, user.Name)
	s.kv.Set(keyPicture, user.Picture)

	s.user = user
	s.log.Info("session established", zap.String("email", user.Email), zap.String("branch", user.Branch))
	return user, nil
}

// EstablishDemo signs in the fixed demo identity without a token. As in a
// tokenless demo login, no token key is persisted, so Restore will not
// resurrect this session after a restart.
func (s *Store) EstablishDemo() *models.AuthUser {
	user := &models.AuthUser{
		Email:  "workingforthebigg@gmail.com",
		Name:   "Demo User",
		Branch: "test",
	}

	s.kv.Set(keyEmail, user.Email)
	s.kv.Set(keyBranch, user.Branch)
	s.kv.Set(keyName, user.Name)

	s.user = user
	s.log.Info("demo session established")
	return user
}

// Clear removes the persisted fields and the in-memory identity, and
// best-effort revokes auto sign-in. Revocation failure is not surfaced.
func (s *Store) Clear() {
	s.kv.Delete(keyEmail)
	s.kv.Delete(keyToken)
	s.kv.Delete(keyBranch)
	s.kv.Delete(keyName)
	s.kv.Delete(keyPicture)
	s.user = nil

	if s.revoker != nil {
		if err := s.revoker.DisableAutoSelect(); err != nil {
			s.log.Debug("auto sign-in revocation failed", zap.Error(err))
		}
	}
	s.log.Info("session cleared")
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
