package publish

import (
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/arthur-debert/gardener/pkg/host"
	"github.com/spf13/afero"
)

type noteMeta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// noteTitle returns the front matter title of the markdown note stored at
// path. It is empty for other files, notes without one, or an unreadable path.
func noteTitle(fs afero.Fs, note *host.File, path string) string {
	if !strings.EqualFold(note.Extension, "md") {
		return ""
	}
	f, err := fs.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	var meta noteMeta
	if _, err := frontmatter.Parse(f, &meta); err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Title)
}
