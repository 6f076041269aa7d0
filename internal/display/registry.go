package display

import (
	"fmt"
	"image/color"
	"sort"
)

// Options are passed to every backend constructor.
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool
	// Background is shown wherever no frame has been presented yet.
	Background color.NRGBA
}

// Factory builds a backend.
type Factory func(Options) (Display, error)

// Registry maps backend names to constructors.
type Registry struct {
	backends map[string]Factory
	help     map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Factory),
		help:     make(map[string]string),
	}
}

func (r *Registry) Register(name, help string, f Factory) {
	r.backends[name] = f
	r.help[name] = help
}

func (r *Registry) Open(name string, opts Options) (Display, error) {
	f, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
	d, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSetup, name, err)
	}
	return d, nil
}

func (r *Registry) Help(name string) string { return r.help[name] }

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
