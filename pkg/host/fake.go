package host

// Fake is an in-process Host for tests and embedding. Its fields may be
// changed between calls.
type Fake struct {
	Active  *File
	Storage Adapter
}

// NewFake returns a Fake with a filesystem adapter at basePath and no
// active file.
func NewFake(basePath string) *Fake {
	return &Fake{Storage: NewFileSystemAdapter(basePath)}
}

func (f *Fake) Workspace() Workspace { return NewStaticWorkspace(f.Active) }
func (f *Fake) Vault() Vault         { return f }

// Adapter lets Fake double as its own Vault
func (f *Fake) Adapter() Adapter {
	if f.Storage == nil {
		return MemoryAdapter{}
	}
	return f.Storage
}
