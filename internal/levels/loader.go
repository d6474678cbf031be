package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// yamlLevel is the on-disk layout of a level file.
type yamlLevel struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Start     yamlStart      `yaml:"start"`
	Platforms []yamlPlatform `yaml:"platforms"`
}

type yamlStart struct {
	X        int `yaml:"x"`
	Platform int `yaml:"platform"`
}

type yamlPlatform struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Parse decodes one YAML level file.
func Parse(data []byte) (registry.Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return registry.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	title := yl.Title
	if title == "" {
		title = yl.ID
	}

	lvl := registry.Level{
		ID:            yl.ID,
		Title:         title,
		Platforms:     make([]core.Rect, 0, len(yl.Platforms)),
		StartX:        yl.Start.X,
		StartPlatform: yl.Start.Platform,
	}
	for _, p := range yl.Platforms {
		lvl.Platforms = append(lvl.Platforms, core.NewRect(p.X, p.Y, p.W, p.H))
	}

	if err := lvl.Validate(); err != nil {
		return registry.Level{}, err
	}
	return lvl, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]registry.Level, error) {
	var levels []registry.Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (registry.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return registry.Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return lvl, nil
}

// RegisterDir loads every level under root and adds it to the registry.
// Levels whose ID is already taken are reported and skipped.
func RegisterDir(root string) ([]string, error) {
	lvls, err := NewLoader(root).LoadAll()
	if err != nil {
		return nil, err
	}

	var (
		ids  []string
		errs []error
	)
	for _, lvl := range lvls {
		if registry.Exists(lvl.ID) {
			errs = append(errs, fmt.Errorf("levels: %q already registered", lvl.ID))
			continue
		}
		lvl := lvl
		registry.Register(lvl.ID, func() registry.Level { return lvl })
		ids = append(ids, lvl.ID)
	}
	return ids, errors.Join(errs...)
}
