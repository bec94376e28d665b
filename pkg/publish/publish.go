// Package publish copies the active note into the migration directory.
//
// A publish resolves the active document through the host, joins its
// vault-relative path onto the vault's base directory, and copies the file
// to MigrationPath + "/" + basename + ".md". A missing active document or a
// vault without a local base directory is a silent no-op. Copies to the
// same destination are serialised, and every failure is reported to the
// Notifier instead of escaping the goroutine that ran it.
package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/filesystem"
	"github.com/arthur-debert/gardener/pkg/host"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DestinationExt is appended to every published note's base name
const DestinationExt = ".md"

// SkipReason explains why a publish did nothing
type SkipReason string

const (
	ReasonNoActiveFile SkipReason = "no-active-file"
	ReasonNoBasePath   SkipReason = "no-base-path"
)

// Result describes a finished publish
type Result struct {
	Skipped     bool
	Reason      SkipReason
	Note        *host.File
	Title       string
	Source      string
	Destination string
	Bytes       int64
}

// Outcome is what Dispatch delivers
type Outcome struct {
	Result *Result
	Err    error
}

// Handler runs the move-and-publish command
type Handler struct {
	host     host.Host
	store    *settings.Store
	fs       afero.Fs
	notifier Notifier
	logger   zerolog.Logger

	locks    sync.Mutex
	destLock map[string]*destinationLock
	inflight sync.WaitGroup
}

type destinationLock struct {
	mu   sync.Mutex
	refs int
}

// Option configures a Handler
type Option func(*Handler)

// WithNotifier sets where outcomes are reported
func WithNotifier(n Notifier) Option {
	return func(h *Handler) { h.notifier = n }
}

// New returns a handler reading settings from store and copying on fs
func New(h host.Host, store *settings.Store, fs afero.Fs, opts ...Option) *Handler {
	handler := &Handler{
		host:     h,
		store:    store,
		fs:       fs,
		notifier: NopNotifier{},
		logger:   logging.GetLogger("publish"),
		destLock: make(map[string]*destinationLock),
	}
	for _, opt := range opts {
		opt(handler)
	}
	return handler
}

// Destination builds the target path for a note. It is plain string
// concatenation: an empty migration path yields "/<basename>.md".
func Destination(migrationPath string, note *host.File) string {
	return migrationPath + "/" + note.Basename + DestinationExt
}

// Plan resolves source and destination without copying anything
func (h *Handler) Plan() *Result {
	note, ok := h.host.Workspace().ActiveFile()
	if !ok || note == nil {
		h.logger.Debug().Msg("No active file, nothing to publish")
		return &Result{Skipped: true, Reason: ReasonNoActiveFile}
	}

	base, ok := host.BasePath(h.host.Vault().Adapter())
	if !ok {
		h.logger.Debug().
			Str("adapter", h.host.Vault().Adapter().Name()).
			Str("note", note.Path).
			Msg("Vault has no local base path, nothing to publish")
		return &Result{Skipped: true, Reason: ReasonNoBasePath, Note: note}
	}

	source := filepath.Join(base, filepath.FromSlash(note.Path))
	destination := Destination(h.store.Settings().MigrationPath, note)

	h.logger.Debug().Str("source", source).Msg("Resolved source")
	h.logger.Debug().Str("destination", destination).Msg("Resolved destination")

	return &Result{Note: note, Source: source, Destination: destination}
}

// Publish copies the active note and waits for the copy to finish
func (h *Handler) Publish(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(h.logger, "publish")
	defer done()

	result := h.Plan()
	if result.Skipped {
		return result, nil
	}

	unlock := h.lockDestination(result.Destination)
	defer unlock()

	n, err := filesystem.CopyFileAtomic(ctx, h.fs, result.Source, result.Destination)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("source", result.Source).
			Str("destination", result.Destination).
			Msg("Publish failed")
		h.notifier.Notify(LevelError, "Publish failed: "+err.Error())
		return result, errors.Wrapf(err, errors.GetErrorCode(err), "failed to publish %s", result.Note.Path).
			WithDetail("destination", result.Destination)
	}

	result.Bytes = n
	result.Title = noteTitle(h.fs, result.Note, result.Source)
	h.logger.Info().
		Str("source", result.Source).
		Str("destination", result.Destination).
		Int64("bytes", n).
		Msg("File was copied to destination")
	label := result.Note.Path
	if result.Title != "" {
		label = fmt.Sprintf("%q (%s)", result.Title, result.Note.Path)
	}
	h.notifier.Notify(LevelSuccess, "Published "+label+" to "+result.Destination)
	return result, nil
}

// Dispatch starts a publish on its own goroutine. The returned channel
// receives exactly one Outcome and is then closed.
func (h *Handler) Dispatch(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer close(out)
		result, err := h.Publish(ctx)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

// Wait blocks until every dispatched publish has finished
func (h *Handler) Wait() {
	h.inflight.Wait()
}

// lockDestination serialises copies that target the same path. Entries
// are dropped once nobody holds or waits for them.
func (h *Handler) lockDestination(dest string) func() {
	key := filepath.Clean(dest)

	h.locks.Lock()
	l, ok := h.destLock[key]
	if !ok {
		l = &destinationLock{}
		h.destLock[key] = l
	}
	l.refs++
	h.locks.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		h.locks.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.destLock, key)
		}
		h.locks.Unlock()
	}
}
