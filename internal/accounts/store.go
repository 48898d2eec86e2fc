package accounts

import (
	"fmt"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// SchemaVersion is written into stores created by this release.
const SchemaVersion = "0.2.0"

// Store is the whole decrypted document.
type Store struct {
	Profiles       []*Profile `json:"Profiles"`
	DefaultAccount string     `json:"DefaultMail"`
	Version        string     `json:"Version"`
}

// NewStore returns an empty store at the current schema version.
func NewStore(defaultAccount string) *Store {
	return &Store{
		Profiles:       []*Profile{},
		DefaultAccount: defaultAccount,
		Version:        SchemaVersion,
	}
}

// FindProfile returns the first profile named name, or the first default
// profile when name is empty. It returns nil when nothing matches.
func (s *Store) FindProfile(name string) *Profile {
	for _, p := range s.Profiles {
		if p == nil {
			continue
		}
		if name == "" && p.Default {
			return p
		}
		if name != "" && p.Name == name {
			return p
		}
	}
	return nil
}

func (s *Store) indexOf(name string) int {
	for i, p := range s.Profiles {
		if p != nil && p.Name == name {
			return i
		}
	}
	return -1
}

// UpdateProfile replaces the first stored profile with the same name,
// keeping its position. It does not add new profiles.
func (s *Store) UpdateProfile(p *Profile) error {
	i := s.indexOf(p.Name)
	if i < 0 {
		return fmt.Errorf("profile %q: %w", p.Name, berrors.ErrNotFound)
	}
	s.Profiles[i] = p
	return nil
}

// AddProfile appends a new empty profile. The first profile of a store
// becomes the default.
func (s *Store) AddProfile(name string) (*Profile, error) {
	if s.indexOf(name) >= 0 {
		return nil, fmt.Errorf("profile %q: %w", name, berrors.ErrProfileExists)
	}
	p := NewProfile(name, len(s.Profiles) == 0)
	s.Profiles = append(s.Profiles, p)
	return p, nil
}

// SetDefault makes the named profile the only default profile.
func (s *Store) SetDefault(name string) error {
	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("profile %q: %w", name, berrors.ErrNotFound)
	}
	for j, p := range s.Profiles {
		if p != nil {
			p.Default = j == i
		}
	}
	return nil
}

// ProfileNames returns profile names in store order.
func (s *Store) ProfileNames() []string {
	names := make([]string, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		if p != nil {
			names = append(names, p.Name)
		}
	}
	return names
}
