// Package settingsui is the settings panel: three labelled text controls
// bound one to one to the settings store. Every change is written to the
// store and persisted immediately.
package settingsui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/arthur-debert/gardener/pkg/style"
	"github.com/arthur-debert/gardener/pkg/ui"
	"github.com/charmbracelet/lipgloss"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Heading is the panel title
const Heading = "Migration Settings"

// Control is one labelled text input
type Control struct {
	Field       settings.Field
	Name        string
	Description string
	Placeholder string
	Value       string
}

type controlSpec struct {
	field       settings.Field
	name        string
	description string
	placeholder string
}

var controlSpecs = []controlSpec{
	{settings.FieldRepositoryURL, "Github Repo Link", settings.DefaultRepositoryURL, "Enter your URL"},
	{settings.FieldAccessKey, "Github Key", "It's a secret!", "Enter your Key"},
	{settings.FieldMigrationPath, "Migration Path", "Where to migrate your notes", "Enter your Path"},
}

// Tab renders and edits the settings record held by a store
type Tab struct {
	store  *settings.Store
	logger zerolog.Logger
}

// New returns a panel bound to store
func New(store *settings.Store) *Tab {
	return &Tab{
		store:  store,
		logger: logging.GetLogger("settingsui"),
	}
}

// Controls returns the panel's inputs initialised from the store
func (t *Tab) Controls() []Control {
	current := t.store.Settings()
	controls := make([]Control, 0, len(controlSpecs))
	for _, spec := range controlSpecs {
		controls = append(controls, Control{
			Field:       spec.field,
			Name:        spec.name,
			Description: spec.description,
			Placeholder: spec.placeholder,
			Value:       current.Get(spec.field),
		})
	}
	return controls
}

// OnChange stores a new value for field and persists the record
func (t *Tab) OnChange(field settings.Field, value string) error {
	t.logger.Debug().
		Str("field", string(field)).
		Str("value", settings.Redact(field, value)).
		Msg("Control changed")
	return t.store.Update(field, value)
}

// Display writes the panel in the requested format. FormatAuto renders as
// plain text; callers resolve it against their output first.
func (t *Tab) Display(w io.Writer, format ui.Format) error {
	switch format {
	case ui.FormatJSON:
		data, err := json.MarshalIndent(t.store.Settings(), "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode settings as json")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case ui.FormatYAML:
		data, err := yaml.Marshal(t.store.Settings())
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode settings as yaml")
		}
		_, err = w.Write(data)
		return err
	case ui.FormatTOML:
		data, err := gotoml.Marshal(t.store.Settings())
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode settings as toml")
		}
		_, err = w.Write(data)
		return err
	case ui.FormatTerminal:
		_, err := io.WriteString(w, t.renderTerminal())
		return err
	default:
		_, err := io.WriteString(w, t.renderText())
		return err
	}
}

func (t *Tab) renderText() string {
	var b strings.Builder
	b.WriteString(Heading + "\n\n")
	for _, c := range t.Controls() {
		fmt.Fprintf(&b, "%s (%s)\n", c.Name, c.Field)
		fmt.Fprintf(&b, "  %s\n", c.Description)
		if c.Value == "" {
			fmt.Fprintf(&b, "  > (%s)\n\n", c.Placeholder)
		} else {
			fmt.Fprintf(&b, "  > %s\n\n", c.Value)
		}
	}
	return b.String()
}

func (t *Tab) renderTerminal() string {
	blocks := []string{style.TitleStyle.Render(Heading)}
	for _, c := range t.Controls() {
		value := style.ValueStyle.Render(c.Value)
		if c.Value == "" {
			value = style.PlaceholderStyle.Render(c.Placeholder)
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			style.LabelStyle.Render(c.Name)+" "+style.MutedStyle.Render(string(c.Field)),
			style.MutedStyle.Render(c.Description),
			"› "+value,
		)
		blocks = append(blocks, style.ControlStyle.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}
