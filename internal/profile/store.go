package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"autocut/internal/services"
)

var versionPattern = regexp.MustCompile(`^(.+)_v(\d+)\.json$`)

// Store manages versioned profile documents under a single directory.
type Store struct {
	dir string
}

// NewStore creates the styles directory if needed and returns a store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create styles directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Entry describes one stored profile version.
type Entry struct {
	Name    string
	Version int
	Path    string
}

// List returns all stored profiles ordered by name, then version.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read styles directory: %w", err)
	}
	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		m := versionPattern.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Name:    m[1],
			Version: version,
			Path:    filepath.Join(s.dir, de.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out, nil
}

// Latest returns the highest stored version for the given profile name.
func (s *Store) Latest(name string) (Profile, string, error) {
	entries, err := s.List()
	if err != nil {
		return Profile{}, "", err
	}
	var best *Entry
	for i := range entries {
		if entries[i].Name != name {
			continue
		}
		if best == nil || entries[i].Version > best.Version {
			best = &entries[i]
		}
	}
	if best == nil {
		return Profile{}, "", services.Wrap(services.ErrInput, "profile", "latest",
			fmt.Sprintf("no style file for %q in %s (run learning first)", name, s.dir), nil)
	}
	p, err := Load(best.Path)
	return p, best.Path, err
}

// Version returns one specific stored version for the given profile name.
func (s *Store) Version(name string, version int) (Profile, string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_v%d.json", name, version))
	p, err := Load(path)
	return p, path, err
}

// Save writes the profile as the next version for its name, never
// overwriting an existing file. An advisory lock serializes version
// allocation across concurrent learning runs.
func (s *Store) Save(p Profile) (string, error) {
	if p.Name == "" {
		return "", services.Wrap(services.ErrValidation, "profile", "save", "profile name required", nil)
	}
	if err := p.Validate(); err != nil {
		return "", services.Wrap(services.ErrValidation, "profile", "save", err.Error(), nil)
	}

	lock := flock.New(filepath.Join(s.dir, ".autocut.lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock styles directory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := s.List()
	if err != nil {
		return "", err
	}
	next := 1
	for _, e := range entries {
		if e.Name == p.Name && e.Version >= next {
			next = e.Version + 1
		}
	}
	p.Version = next
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_v%d.json", p.Name, next))
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	data = append(data, '\n')

	// O_EXCL guards against a version appearing between List and write.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create profile %s: %w", path, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write profile %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close profile %s: %w", path, err)
	}
	return path, nil
}

// Load reads and validates a profile document.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, services.Wrap(services.ErrInput, "profile", "load",
				fmt.Sprintf("style file not found: %s", path), nil)
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, services.Wrap(services.ErrInput, "profile", "load",
			fmt.Sprintf("parse style file %s", path), err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, services.Wrap(services.ErrValidation, "profile", "load", err.Error(), nil)
	}
	return p, nil
}
