// Package docs tracks documents the host currently holds open in memory.
// The preview layer consults the registry before any cache or disk lookup
// so an edited buffer is never shadowed by a stale snapshot.
package docs

// Registry maps canonical paths to live document content. It is an
// explicitly injected collaborator: hosts embedding the picker register
// their open buffers here, and a standalone run simply leaves it empty.
type Registry struct {
	open map[string]string
}

func NewRegistry() *Registry {
	return &Registry{open: make(map[string]string)}
}

// Open registers (or updates) a live document under its canonical path.
func (r *Registry) Open(canonicalPath, content string) {
	r.open[canonicalPath] = content
}

// Close drops a live document.
func (r *Registry) Close(canonicalPath string) {
	delete(r.open, canonicalPath)
}

// Get returns the live content for a canonical path, if any.
func (r *Registry) Get(canonicalPath string) (string, bool) {
	content, ok := r.open[canonicalPath]
	return content, ok
}

func (r *Registry) Len() int {
	return len(r.open)
}
