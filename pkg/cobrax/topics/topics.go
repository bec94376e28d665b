// Package topics adds markdown help topics to a cobra command tree. Topics
// are read from any afero filesystem, usually an embedded directory wrapped
// with afero.FromIOFS, and are shown by "help <topic>".
package topics

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// optionPrefix marks topics that document a flag, e.g. option-vault.md is
// shown by "help --vault"
const optionPrefix = "option-"

// Topic is one help page
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions considered as topics, [".md", ".txt"] when empty
	Extensions []string
	// Renderer formats topic content, PlainRenderer when nil
	Renderer Renderer
}

// Manager holds the topics found under one directory
type Manager struct {
	fs         afero.Fs
	dir        string
	extensions []string
	renderer   Renderer
	topics     map[string]*Topic
}

// Load scans dir on fsys for topic files
func Load(fsys afero.Fs, dir string, opts Options) (*Manager, error) {
	m := &Manager{
		fs:         fsys,
		dir:        dir,
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
		topics:     make(map[string]*Topic),
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.scan(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) scan() error {
	if ok, _ := afero.DirExists(m.fs, m.dir); !ok {
		return nil
	}

	return afero.Walk(m.fs, m.dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := afero.ReadFile(m.fs, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read help topic %s", p)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks a topic up by name. "--flag" and "-flag" resolve to the
// option-flag topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	trimmed := strings.TrimLeft(name, "-")
	if t, ok := m.topics[trimmed]; ok && trimmed == name {
		return t, true
	}
	t, ok := m.topics[optionPrefix+trimmed]
	return t, ok
}

// Names lists every topic name, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes a topic through the configured renderer
func (m *Manager) Render(w io.Writer, t *Topic) error {
	_, err := io.WriteString(w, m.renderer.Render(t.Content, path.Ext(t.Path)))
	return err
}

// List writes the topic index
func (m *Manager) List(w io.Writer, program string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install replaces root's help command with one that also knows the
// manager's topics. Unknown names fall through to cobra's own help.
func (m *Manager) Install(root *cobra.Command) {
	defaultHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				defaultHelp(root, nil)
				return nil
			}
			if args[0] == "topics" {
				m.List(out, root.Name())
				return nil
			}
			if t, ok := m.Get(args[0]); ok {
				return m.Render(out, t)
			}

			target, _, err := root.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrNotFound, "unknown help topic %q", strings.Join(args, " "))
			}
			target.InitDefaultHelpFlag()
			defaultHelp(target, nil)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
