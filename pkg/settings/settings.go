// Package settings holds the plugin's three-field settings record and its
// persistence.
//
// The record is loaded once at plugin load (persisted values layered over
// the defaults) and written back in full after every single-field change.
// Nothing is validated: empty strings are legal for every field.
package settings

import (
	"sort"
	"strings"

	"github.com/arthur-debert/gardener/pkg/errors"
)

// DefaultRepositoryURL is the repository link a fresh install starts with
const DefaultRepositoryURL = "https://github.com/KrishKrosh/digital-garden"

// Settings is the persisted plugin configuration
type Settings struct {
	RepositoryURL string `koanf:"repository_url" toml:"repository_url" json:"repository_url" yaml:"repository_url"`
	// AccessKey is stored but used by nothing
	AccessKey     string `koanf:"access_key" toml:"access_key" json:"access_key" yaml:"access_key"`
	MigrationPath string `koanf:"migration_path" toml:"migration_path" json:"migration_path" yaml:"migration_path"`
}

// Defaults returns the record used when nothing has been persisted
func Defaults() Settings {
	return Settings{
		RepositoryURL: DefaultRepositoryURL,
		AccessKey:     "",
		MigrationPath: "",
	}
}

// Field identifies one settings value by its persisted key
type Field string

const (
	FieldRepositoryURL Field = "repository_url"
	FieldAccessKey     Field = "access_key"
	FieldMigrationPath Field = "migration_path"
)

// Fields lists every field in display order
func Fields() []Field {
	return []Field{FieldRepositoryURL, FieldAccessKey, FieldMigrationPath}
}

// ParseField accepts a persisted key, with dashes or underscores
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}

	keys := make([]string, 0, len(Fields()))
	for _, known := range Fields() {
		keys = append(keys, string(known))
	}
	sort.Strings(keys)
	return "", errors.Newf(errors.ErrInvalidInput, "unknown settings field %q (want one of %s)", s, strings.Join(keys, ", "))
}

// Sensitive reports whether the value must stay out of logs
func (f Field) Sensitive() bool {
	return f == FieldAccessKey
}

// Get returns the value of field f
func (s Settings) Get(f Field) string {
	switch f {
	case FieldRepositoryURL:
		return s.RepositoryURL
	case FieldAccessKey:
		return s.AccessKey
	case FieldMigrationPath:
		return s.MigrationPath
	}
	return ""
}

// Set assigns value to field f
func (s *Settings) Set(f Field, value string) error {
	switch f {
	case FieldRepositoryURL:
		s.RepositoryURL = value
	case FieldAccessKey:
		s.AccessKey = value
	case FieldMigrationPath:
		s.MigrationPath = value
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown settings field %q", string(f))
	}
	return nil
}

func (s Settings) toMap() map[string]interface{} {
	m := make(map[string]interface{}, len(Fields()))
	for _, f := range Fields() {
		m[string(f)] = s.Get(f)
	}
	return m
}

// Redact masks a value for log output
func Redact(f Field, value string) string {
	if !f.Sensitive() || value == "" {
		return value
	}
	return "[redacted]"
}
