package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"poptimer/internal/core/model"
)

var (
	// ErrPresetNotFound is returned for an unknown preset ID.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidPresetName is returned when a preset name is blank.
	ErrInvalidPresetName = errors.New("preset name is empty")
)

type yamlPreset struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Sets            int       `yaml:"sets"`
	WorkTimeSeconds int       `yaml:"work_time_seconds"`
	RestTimeSeconds int       `yaml:"rest_time_seconds"`
	CreatedAt       time.Time `yaml:"created_at"`
}

type yamlPresets struct {
	Presets []yamlPreset `yaml:"presets"`
}

// PresetStore keeps named workouts in presets.yaml.
type PresetStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewPresetStore creates a store backed by presets.yaml in dir.
func NewPresetStore(dir string, logger *slog.Logger) *PresetStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PresetStore{
		path:   filepath.Join(dir, presetsFileName),
		logger: logger,
		now:    time.Now,
	}
}

// List returns all presets in creation order.
func (store *PresetStore) List() ([]model.Preset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.load()
}

// Get returns the preset with id.
func (store *PresetStore) Get(id string) (model.Preset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.load()
	if err != nil {
		return model.Preset{}, err
	}
	for _, preset := range presets {
		if preset.ID == id {
			return preset, nil
		}
	}
	return model.Preset{}, fmt.Errorf("get preset %q: %w", id, ErrPresetNotFound)
}

// Save validates config and stores it under name.
func (store *PresetStore) Save(name string, config model.WorkoutConfig) (model.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Preset{}, fmt.Errorf("save preset: %w", ErrInvalidPresetName)
	}
	if err := config.Validate(); err != nil {
		return model.Preset{}, fmt.Errorf("save preset: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.load()
	if err != nil {
		return model.Preset{}, err
	}
	preset := model.Preset{
		ID:            uuid.NewString(),
		Name:          name,
		CreatedAt:     store.now().UTC(),
		WorkoutConfig: config,
	}
	if err := store.write(append(presets, preset)); err != nil {
		return model.Preset{}, err
	}
	return preset, nil
}

// Delete removes the preset with id.
func (store *PresetStore) Delete(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.load()
	if err != nil {
		return err
	}
	kept := presets[:0]
	found := false
	for _, preset := range presets {
		if preset.ID == id {
			found = true
			continue
		}
		kept = append(kept, preset)
	}
	if !found {
		return fmt.Errorf("delete preset %q: %w", id, ErrPresetNotFound)
	}
	return store.write(kept)
}

func (store *PresetStore) load() ([]model.Preset, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var fileData yamlPresets
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse presets yaml: %w", err)
	}

	presets := make([]model.Preset, 0, len(fileData.Presets))
	for _, entry := range fileData.Presets {
		preset := model.Preset{
			ID:        entry.ID,
			Name:      strings.TrimSpace(entry.Name),
			CreatedAt: entry.CreatedAt,
			WorkoutConfig: model.WorkoutConfig{
				Sets:     entry.Sets,
				WorkTime: entry.WorkTimeSeconds,
				RestTime: entry.RestTimeSeconds,
			},
		}
		if preset.ID == "" || preset.Name == "" || preset.Validate() != nil {
			store.logger.Warn("skipping invalid preset",
				slog.String("id", entry.ID),
				slog.String("name", entry.Name))
			continue
		}
		presets = append(presets, preset)
	}
	return presets, nil
}

func (store *PresetStore) write(presets []model.Preset) error {
	fileData := yamlPresets{Presets: make([]yamlPreset, 0, len(presets))}
	for _, preset := range presets {
		fileData.Presets = append(fileData.Presets, yamlPreset{
			ID:              preset.ID,
			Name:            preset.Name,
			Sets:            preset.Sets,
			WorkTimeSeconds: preset.WorkTime,
			RestTimeSeconds: preset.RestTime,
			CreatedAt:       preset.CreatedAt,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal presets yaml: %w", err)
	}
	if err := writeFileAtomic(store.path, serialized); err != nil {
		return fmt.Errorf("write presets file: %w", err)
	}
	return nil
}
