package host

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/arthur-debert/gardener/pkg/paths"
	"github.com/spf13/afero"
)

// FileSystemAdapter stores vault files on the local disk
type FileSystemAdapter struct {
	basePath string
}

// NewFileSystemAdapter returns an adapter rooted at basePath
func NewFileSystemAdapter(basePath string) *FileSystemAdapter {
	return &FileSystemAdapter{basePath: basePath}
}

func (a *FileSystemAdapter) Name() string { return "filesystem" }

// BasePath returns the vault's absolute base directory
func (a *FileSystemAdapter) BasePath() string { return a.basePath }

// MemoryAdapter stands in for storage that has no local base directory
type MemoryAdapter struct{}

func (MemoryAdapter) Name() string { return "memory" }

// LocalVault is a vault on disk
type LocalVault struct {
	adapter Adapter
}

// NewLocalVault returns a filesystem-backed vault rooted at root
func NewLocalVault(root string) *LocalVault {
	return &LocalVault{adapter: NewFileSystemAdapter(root)}
}

func (v *LocalVault) Adapter() Adapter { return v.adapter }

// WorkspaceState reads the active document from the host's persisted
// workspace layout.
type WorkspaceState struct {
	fs   afero.Fs
	path string
}

// NewWorkspaceState reads the workspace layout stored at path
func NewWorkspaceState(fs afero.Fs, path string) *WorkspaceState {
	return &WorkspaceState{fs: fs, path: path}
}

type workspaceNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Children []workspaceNode `json:"children"`
	State    *struct {
		Type  string `json:"type"`
		State struct {
			File string `json:"file"`
		} `json:"state"`
	} `json:"state"`
}

type workspaceLayout struct {
	Main          *workspaceNode `json:"main"`
	Left          *workspaceNode `json:"left"`
	Right         *workspaceNode `json:"right"`
	Active        string         `json:"active"`
	LastOpenFiles []string       `json:"lastOpenFiles"`
}

// ActiveFile returns the file shown in the active leaf, falling back to the
// most recently opened file. Any problem reading the layout means there is
// no active file.
func (w *WorkspaceState) ActiveFile() (*File, bool) {
	logger := logging.GetLogger("host.workspace")

	data, err := afero.ReadFile(w.fs, w.path)
	if err != nil {
		logger.Debug().Err(err).Str("path", w.path).Msg("No workspace state")
		return nil, false
	}

	var layout workspaceLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("Unreadable workspace state")
		return nil, false
	}

	if layout.Active != "" {
		for _, root := range []*workspaceNode{layout.Main, layout.Left, layout.Right} {
			if file := findLeafFile(root, layout.Active); file != "" {
				return NewFile(file), true
			}
		}
	}

	for _, file := range layout.LastOpenFiles {
		if file != "" {
			return NewFile(file), true
		}
	}

	return nil, false
}

func findLeafFile(node *workspaceNode, id string) string {
	if node == nil {
		return ""
	}
	if node.ID == id && node.State != nil {
		return node.State.State.File
	}
	for i := range node.Children {
		if file := findLeafFile(&node.Children[i], id); file != "" {
			return file
		}
	}
	return ""
}

// StaticWorkspace always reports the same active file
type StaticWorkspace struct {
	file *File
}

// NewStaticWorkspace returns a workspace whose active file is file. A nil
// file means no document is active.
func NewStaticWorkspace(file *File) *StaticWorkspace {
	return &StaticWorkspace{file: file}
}

func (s *StaticWorkspace) ActiveFile() (*File, bool) {
	return s.file, s.file != nil
}

// ResolveNote turns a note argument into a vault file. The argument may be
// vault-relative or an absolute path inside the vault.
func ResolveNote(vaultRoot, note string) (*File, error) {
	rel := note
	if filepath.IsAbs(note) {
		r, err := filepath.Rel(vaultRoot, note)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrVaultOutside, "note is not inside the vault: %s", note)
		}
		rel = r
	}

	rel = filepath.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errors.Newf(errors.ErrVaultOutside, "note is not inside the vault: %s", note).
			WithDetail("vault", vaultRoot)
	}

	return NewFile(filepath.ToSlash(rel)), nil
}

// Local is the host used by the command line: a vault on disk and a
// workspace that is either the persisted layout or an explicit note.
type Local struct {
	workspace Workspace
	vault     Vault
}

// NewLocal assembles a Local host. An empty note means the active file
// comes from the vault's workspace state.
func NewLocal(fs afero.Fs, p paths.Paths, note string) (*Local, error) {
	root := p.VaultRoot()
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrVaultNotFound, "vault not found: %s", root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read vault: %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrVaultNotFound, "vault is not a directory: %s", root)
	}

	var ws Workspace
	if note != "" {
		file, err := ResolveNote(root, note)
		if err != nil {
			return nil, err
		}
		ws = NewStaticWorkspace(file)
	} else {
		ws = NewWorkspaceState(fs, p.WorkspaceStatePath())
	}

	return &Local{workspace: ws, vault: NewLocalVault(root)}, nil
}

func (l *Local) Workspace() Workspace { return l.workspace }
func (l *Local) Vault() Vault         { return l.vault }
