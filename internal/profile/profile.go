// Package profile reads player club profiles and resolves club names
// through an alias table.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

// Profile is a player's bag.
type Profile struct {
	Owner string               `json:"owner"`
	Clubs []caddie.ClubProfile `json:"clubs"`
}

// Lookup is the result of resolving a club name against a profile.
type Lookup struct {
	Club  caddie.ClubProfile
	Found bool
}

// Find resolves name through the alias table. Entries whose carry is not
// positive are treated as absent.
func (p *Profile) Find(aliases AliasTable, name string) Lookup {
	if p == nil {
		return Lookup{}
	}
	want := aliases.Canonical(name)
	for _, c := range p.Clubs {
		if aliases.Canonical(c.Name) == want && c.AverageCarryYards > 0 {
			return Lookup{Club: c, Found: true}
		}
	}
	return Lookup{}
}

// AddClub validates and appends a club, replacing an existing entry with
// the same canonical name.
func (p *Profile) AddClub(aliases AliasTable, club caddie.ClubProfile) error {
	if err := club.Validate(); err != nil {
		return err
	}
	key := aliases.Canonical(club.Name)
	for i, c := range p.Clubs {
		if aliases.Canonical(c.Name) == key {
			p.Clubs[i] = club
			return nil
		}
	}
	p.Clubs = append(p.Clubs, club)
	return nil
}

// Source supplies player profiles.
type Source interface {
	Load(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, id string, p *Profile) error
}

var profileID = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

var (
	// ErrNotFound marks a profile that does not exist yet.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidID marks an id that cannot name a profile file.
	ErrInvalidID = errors.New("invalid profile id")
)

// FileSource keeps one JSON file per profile in a directory.
type FileSource struct {
	dir string
	mu  sync.Mutex
}

// NewFileSource creates a file-backed profile source.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) path(id string) (string, error) {
	if !profileID.MatchString(id) {
		return "", fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Load reads a profile. Any read or decode failure is reported as
// caddie.ErrProfileUnavailable so callers fall back to other carry sources.
func (s *FileSource) Load(ctx context.Context, id string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", caddie.ErrProfileUnavailable, err)
	}

	s.mu.Lock()
	data, err := os.ReadFile(path)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %q", caddie.ErrProfileUnavailable, ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", caddie.ErrProfileUnavailable, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse profile %q: %v", caddie.ErrProfileUnavailable, id, err)
	}
	return &p, nil
}

// Save writes the profile atomically.
func (s *FileSource) Save(ctx context.Context, id string, p *Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}
