// Package host defines the capabilities gardener needs from the note-taking
// application it serves, and local implementations of them.
//
// The plugin core only ever asks three things of its host: which document
// is active, where that document lives relative to the vault, and, when the
// vault is stored on a local disk, the vault's absolute base directory.
package host

import (
	"path"
	"strings"
)

// Host is the capability surface the plugin is given at load time
type Host interface {
	Workspace() Workspace
	Vault() Vault
}

// Workspace reports the document currently focused in the editor
type Workspace interface {
	// ActiveFile returns the active document, or false when none is open
	ActiveFile() (*File, bool)
}

// Vault is the root collection of documents
type Vault interface {
	Adapter() Adapter
}

// Adapter describes how vault files are physically stored
type Adapter interface {
	Name() string
}

// BasePather is implemented by adapters backed by a local filesystem
type BasePather interface {
	BasePath() string
}

// BasePath resolves the absolute base directory of a vault. It only
// succeeds for filesystem-backed adapters.
func BasePath(a Adapter) (string, bool) {
	bp, ok := a.(BasePather)
	if !ok {
		return "", false
	}
	base := bp.BasePath()
	return base, base != ""
}

// File is a handle to a document in the vault
type File struct {
	// Path is relative to the vault root, slash separated
	Path string
	// Basename is the file name without its extension
	Basename string
	// Extension has no leading dot
	Extension string
}

// NewFile builds a File from a vault-relative path
func NewFile(relPath string) *File {
	p := strings.TrimPrefix(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), "/")
	name := path.Base(p)
	ext := path.Ext(name)
	return &File{
		Path:      p,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.TrimPrefix(ext, "."),
	}
}
