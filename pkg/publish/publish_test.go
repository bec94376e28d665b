package publish

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/host"
	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fs       afero.Fs
	host     *host.Fake
	store    *settings.Store
	notifier *RecordingNotifier
	handler  *Handler
}

func newFixture(t *testing.T, migrationPath string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/vault/ideas", 0755))
	require.NoError(t, fs.MkdirAll("/garden", 0755))

	store := settings.NewStore(settings.NewFileDataStore(fs, "/cfg/settings.toml"))
	require.NoError(t, store.Load())
	require.NoError(t, store.Update(settings.FieldMigrationPath, migrationPath))

	h := host.NewFake("/vault")
	rec := &RecordingNotifier{}
	return &fixture{
		fs:       fs,
		host:     h,
		store:    store,
		notifier: rec,
		handler:  New(h, store, fs, WithNotifier(rec)),
	}
}

func (f *fixture) writeNote(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, "/vault/"+rel, []byte(content), 0644))
	f.host.Active = host.NewFile(rel)
}

func snapshot(t *testing.T, fs afero.Fs) map[string]string {
	t.Helper()
	files := map[string]string{}
	require.NoError(t, afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(fs, path)
		files[path] = string(data)
		return err
	}))
	return files
}

func TestDestination(t *testing.T) {
	assert.Equal(t, "/garden/note.md", Destination("/garden", host.NewFile("ideas/note.md")))
	assert.Equal(t, "/garden//note.md", Destination("/garden/", host.NewFile("note.md")))
	assert.Equal(t, "/note.md", Destination("", host.NewFile("note.md")))
	assert.Equal(t, "out/board.md", Destination("out", host.NewFile("board.canvas")))
}

func TestPublishCopiesActiveNote(t *testing.T) {
	f := newFixture(t, "/garden")
	content := "---\ntitle: Idea\n---\n\nSome *thoughts*.\n"
	f.writeNote(t, "ideas/Big Idea.md", content)

	result, err := f.handler.Publish(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, "/vault/ideas/Big Idea.md", result.Source)
	assert.Equal(t, "/garden/Big Idea.md", result.Destination)
	assert.Equal(t, int64(len(content)), result.Bytes)

	got, err := afero.ReadFile(f.fs, "/garden/Big Idea.md")
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelSuccess, notes[0].Level)
}

func TestPublishOverwritesWithoutConfirmation(t *testing.T) {
	f := newFixture(t, "/garden")
	require.NoError(t, afero.WriteFile(f.fs, "/garden/note.md", []byte("stale"), 0644))
	f.writeNote(t, "note.md", "fresh")

	_, err := f.handler.Publish(context.Background())
	require.NoError(t, err)

	got, err := afero.ReadFile(f.fs, "/garden/note.md")
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestPublishWithoutActiveFileIsNoop(t *testing.T) {
	f := newFixture(t, "/garden")
	before := snapshot(t, f.fs)

	result, err := f.handler.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, ReasonNoActiveFile, result.Reason)

	assert.Equal(t, before, snapshot(t, f.fs))
	assert.Empty(t, f.notifier.Notifications())
}

func TestPublishWithoutBasePathIsNoop(t *testing.T) {
	f := newFixture(t, "/garden")
	f.writeNote(t, "note.md", "body")
	f.host.Storage = host.MemoryAdapter{}
	before := snapshot(t, f.fs)

	result, err := f.handler.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, ReasonNoBasePath, result.Reason)

	assert.Equal(t, before, snapshot(t, f.fs))
	assert.Empty(t, f.notifier.Notifications())
}

func TestPublishMissingDestinationDirectory(t *testing.T) {
	f := newFixture(t, "/does/not/exist")
	f.writeNote(t, "note.md", "body")

	_, err := f.handler.Publish(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileCreate))
	assert.Equal(t, "/does/not/exist/note.md", errors.GetErrorDetails(err)["destination"])

	exists, _ := afero.Exists(f.fs, "/does/not/exist/note.md")
	assert.False(t, exists)

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
}

func TestPublishFailureReachesUserOnlyThroughNotifier(t *testing.T) {
	var buf bytes.Buffer
	origLogger, origLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = origLogger
		zerolog.SetGlobalLevel(origLevel)
	}()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	f := newFixture(t, "/does/not/exist")
	f.writeNote(t, "note.md", "body")

	_, err := f.handler.Publish(context.Background())
	require.Error(t, err)
	assert.Empty(t, buf.String())
	require.Len(t, f.notifier.Notifications(), 1)
}

func TestPublishMissingSource(t *testing.T) {
	f := newFixture(t, "/garden")
	f.host.Active = host.NewFile("deleted.md")

	_, err := f.handler.Publish(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestPublishReadsCurrentSettings(t *testing.T) {
	f := newFixture(t, "/garden")
	require.NoError(t, f.fs.MkdirAll("/elsewhere", 0755))
	f.writeNote(t, "note.md", "body")

	require.NoError(t, f.store.Update(settings.FieldMigrationPath, "/elsewhere"))

	result, err := f.handler.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/note.md", result.Destination)
}

func TestDispatchDeliversOneOutcome(t *testing.T) {
	f := newFixture(t, "/garden")
	f.writeNote(t, "note.md", "body")

	ch := f.handler.Dispatch(context.Background())
	outcome, ok := <-ch
	require.True(t, ok)
	require.NoError(t, outcome.Err)
	assert.Equal(t, "/garden/note.md", outcome.Result.Destination)

	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the outcome")
}

func TestDispatchFailureDoesNotEscape(t *testing.T) {
	f := newFixture(t, "/missing")
	f.writeNote(t, "note.md", "body")

	outcome := <-f.handler.Dispatch(context.Background())
	require.Error(t, outcome.Err)
	f.handler.Wait()
}

func TestConcurrentPublishesToSameDestination(t *testing.T) {
	f := newFixture(t, "/garden")
	f.writeNote(t, "note.md", "final content")

	const n = 8
	channels := make([]<-chan Outcome, 0, n)
	for i := 0; i < n; i++ {
		channels = append(channels, f.handler.Dispatch(context.Background()))
	}
	for _, ch := range channels {
		outcome := <-ch
		require.NoError(t, outcome.Err)
	}
	f.handler.Wait()

	got, err := afero.ReadFile(f.fs, "/garden/note.md")
	require.NoError(t, err)
	assert.Equal(t, "final content", string(got))

	entries, err := afero.ReadDir(f.fs, "/garden")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")

	f.handler.locks.Lock()
	assert.Empty(t, f.handler.destLock)
	f.handler.locks.Unlock()
}

func TestLockDestinationSerialises(t *testing.T) {
	h := New(host.NewFake("/vault"), settings.NewStore(settings.NewFileDataStore(afero.NewMemMapFs(), "/s.toml")), afero.NewMemMapFs())

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := h.lockDestination("/garden/./note.md")
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, h.destLock)
}

func TestPublishCanceledContext(t *testing.T) {
	f := newFixture(t, "/garden")
	f.writeNote(t, "note.md", "body")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.handler.Publish(ctx)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyCanceled))
	exists, _ := afero.Exists(f.fs, "/garden/note.md")
	assert.False(t, exists)
}

func TestPublishReportsFrontMatterTitle(t *testing.T) {
	f := newFixture(t, "/garden")
	f.writeNote(t, "ideas/idea-42.md", "---\ntitle: The Answer\n---\nbody\n")

	result, err := f.handler.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The Answer", result.Title)

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, `Published "The Answer" (ideas/idea-42.md) to /garden/idea-42.md`, notes[0].Message)
}

func TestNoteTitle(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.md", []byte("no front matter"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b.canvas", []byte("---\ntitle: X\n---\n"), 0644))

	assert.Equal(t, "", noteTitle(fs, host.NewFile("a.md"), "/a.md"))
	assert.Equal(t, "", noteTitle(fs, host.NewFile("b.canvas"), "/b.canvas"))
	assert.Equal(t, "", noteTitle(fs, host.NewFile("gone.md"), "/gone.md"))
}
