package settings

import (
	stderrors "errors"
	"sync"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// rawBytesProvider feeds already-read bytes to koanf
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Store owns the in-memory settings record for the plugin's lifetime. The
// command handler and the settings panel share one Store.
type Store struct {
	mu       sync.RWMutex
	data     DataStore
	codec    codec
	settings Settings
	logger   zerolog.Logger
}

// NewStore returns a store holding the defaults until Load is called
func NewStore(data DataStore) *Store {
	return &Store{
		data:     data,
		codec:    codecFor(data.Location()),
		settings: Defaults(),
		logger:   logging.GetLogger("settings"),
	}
}

// Location describes where the record is persisted
func (s *Store) Location() string {
	return s.data.Location()
}

// Load replaces the in-memory record with the defaults overlaid by the
// persisted data, if any.
func (s *Store) Load() error {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults().toMap(), "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	raw, found, err := s.data.Read()
	if err != nil {
		return err
	}
	if found {
		if err := k.Load(&rawBytesProvider{bytes: raw}, s.codec.parser); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings at %s", s.data.Location())
		}
	}

	var loaded Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &loaded,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &loaded, unmarshalConf); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to decode settings at %s", s.data.Location())
	}

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()

	s.logger.Debug().
		Bool("persisted", found).
		Str("location", s.data.Location()).
		Str("migrationPath", loaded.MigrationPath).
		Msg("Settings loaded")
	return nil
}

// Settings returns a copy of the current record
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save writes the full current record
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := s.codec.marshal(s.settings)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to encode settings as %s", s.codec.name)
	}
	if err := s.data.Write(data); err != nil {
		return err
	}
	s.logger.Debug().Str("location", s.data.Location()).Msg("Settings saved")
	return nil
}

// Update sets one field and persists the whole record straight away. The
// in-memory value keeps the change even when the write fails.
func (s *Store) Update(f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.Set(f, value); err != nil {
		return err
	}

	s.logger.Info().
		Str("field", string(f)).
		Str("value", Redact(f, value)).
		Msg("Setting changed")

	return s.saveLocked()
}
