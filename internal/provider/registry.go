package provider

import "fmt"

// Registry holds configured providers keyed by a short identifier
// ("google"). The host registers the single provider named in its
// configuration and looks it up per request; the registry performs no
// auth logic itself.
type Registry struct {
	providers map[string]ServiceProvider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ServiceProvider)}
}

// Register adds a provider under the given name, replacing any
// previous registration with the same name.
func (r *Registry) Register(name string, p ServiceProvider) {
	r.providers[name] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (ServiceProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider: %s", name)
	}
	return p, nil
}
