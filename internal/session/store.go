package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Session is the credential obtained at login. It is read-shared by every
// authenticated request and mutated only by login and logout.
type Session struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh,omitempty"`
	User    *Profile `json:"user,omitempty"`
}

// Profile is the slice of the account stored alongside the tokens.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// Valid reports whether the session carries a usable access token.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Access) != ""
}

// Token returns the access token, or "" for a nil session.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.Access
}

// Store persists the authTokens document as a JSON file, standing in for
// the browser storage the web client uses.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored session. A missing file means no session and is
// not an error.
func (s *Store) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", s.path, err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", s.path, err)
	}
	if !sess.Valid() {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session, creating the parent directory when needed.
func (s *Store) Save(sess *Session) error {
	if !sess.Valid() {
		return errors.New("session: access token is required")
	}
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create %s: %w", dir, err)
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
