// Package plugin wires the settings store, the settings panel and the
// publish handler together and exposes them through a command registry,
// following the load/unload lifecycle of a host plugin.
package plugin

import (
	"context"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/host"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/arthur-debert/gardener/pkg/publish"
	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/arthur-debert/gardener/pkg/settingsui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// PublishCommandID is the ID of the move-and-publish command
	PublishCommandID = "move-and-publish"
	// PublishCommandName is its display name
	PublishCommandName = "Move and publish"
)

// Plugin is one loaded instance
type Plugin struct {
	host     host.Host
	fs       afero.Fs
	store    *settings.Store
	registry *Registry
	handler  *publish.Handler
	tab      *settingsui.Tab

	notifier publish.Notifier
	detached bool
	loaded   bool
	logger   zerolog.Logger
}

// Option configures a Plugin
type Option func(*Plugin)

// WithNotifier sets where publish outcomes are reported
func WithNotifier(n publish.Notifier) Option {
	return func(p *Plugin) { p.notifier = n }
}

// WithDetachedPublish makes the publish command return as soon as the copy
// has been dispatched. OnUnload still waits for it.
func WithDetachedPublish() Option {
	return func(p *Plugin) { p.detached = true }
}

// New returns an unloaded plugin for h, persisting settings to data
func New(h host.Host, fs afero.Fs, data settings.DataStore, opts ...Option) *Plugin {
	p := &Plugin{
		host:     h,
		fs:       fs,
		store:    settings.NewStore(data),
		registry: NewRegistry(),
		notifier: publish.NopNotifier{},
		logger:   logging.GetLogger("plugin"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnLoad reads the settings, registers the commands and builds the panel
func (p *Plugin) OnLoad(ctx context.Context) error {
	if p.loaded {
		return errors.New(errors.ErrAlreadyExists, "plugin is already loaded")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "plugin load canceled")
	}

	if err := p.store.Load(); err != nil {
		return err
	}

	p.handler = publish.New(p.host, p.store, p.fs, publish.WithNotifier(p.notifier))
	if err := p.registry.Register(Command{
		ID:       PublishCommandID,
		Name:     PublishCommandName,
		Callback: p.runPublish,
	}); err != nil {
		return err
	}
	p.tab = settingsui.New(p.store)
	p.loaded = true

	p.logger.Debug().
		Str("settings", p.store.Location()).
		Int("commands", len(p.registry.Commands())).
		Msg("Plugin loaded")
	return nil
}

// OnUnload waits for dispatched publishes and drops the commands
func (p *Plugin) OnUnload() {
	if !p.loaded {
		return
	}
	p.handler.Wait()
	p.registry.Unregister(PublishCommandID)
	p.loaded = false
	p.logger.Debug().Msg("Plugin unloaded")
}

func (p *Plugin) runPublish(ctx context.Context) error {
	outcome := p.handler.Dispatch(ctx)
	if p.detached {
		return nil
	}
	return (<-outcome).Err
}

// Registry returns the plugin's command registry
func (p *Plugin) Registry() *Registry { return p.registry }

// Store returns the settings store shared by the handler and the panel
func (p *Plugin) Store() *settings.Store { return p.store }

// SettingsTab returns the settings panel; nil before OnLoad
func (p *Plugin) SettingsTab() *settingsui.Tab { return p.tab }

// Handler returns the publish handler; nil before OnLoad
func (p *Plugin) Handler() *publish.Handler { return p.handler }
