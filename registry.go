package imgedit

import (
	"sync"

	"github.com/wbrown/imgedit/imageutil"
)

// Registry maps image names to buffers. Names remember the order in which
// they were first registered. A Registry is safe for concurrent use; the
// buffers it holds are immutable, so Get hands out shared references.
type Registry struct {
	names  []string
	images map[string]*imageutil.Buffer
	mu     sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		names:  make([]string, 0),
		images: make(map[string]*imageutil.Buffer),
	}
}

// Put registers img under name, replacing any previous image.
func (r *Registry) Put(name string, img *imageutil.Buffer) error {
	if img == nil {
		return imageutil.InvalidArgumentError("put", "nil image for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.images[name]; !exists {
		r.names = append(r.names, name)
	}
	r.images[name] = img

	Logger().Debug("registered image", "name", name,
		"width", img.Width(), "height", img.Height())
	return nil
}

// Get returns the image registered under name.
func (r *Registry) Get(name string) (*imageutil.Buffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, exists := r.images[name]
	if !exists {
		return nil, imageutil.NotFoundError("get", name)
	}
	return img, nil
}

// Names returns the registered names in the order they were first put.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.names...)
}

// Len returns the number of registered images.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names)
}
