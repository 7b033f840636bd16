package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
)

// ErrNotFound is returned when no serializer is registered for a content type.
var ErrNotFound = errors.New("render: content type not registered")

// Registry stores serializers by content type, providing discovery and
// duplication safeguards. It satisfies host.ContentTypes.
type Registry struct {
	mu          sync.RWMutex
	serializers map[string]host.SerializeFunc
}

var _ host.ContentTypes = (*Registry)(nil)

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		serializers: make(map[string]host.SerializeFunc),
	}
}

// Register adds a serializer for contentType. Parameters such as charset are
// ignored when keying. Duplicate content types return an error.
func (r *Registry) Register(contentType string, serialize host.SerializeFunc) error {
	if serialize == nil {
		return fmt.Errorf("render: serializer is required")
	}
	key := host.BaseMime(contentType)
	if key == "" {
		return fmt.Errorf("render: content type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.serializers[key]; exists {
		return fmt.Errorf("render: content type %q already registered", key)
	}

	r.serializers[key] = serialize
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(contentType string, serialize host.SerializeFunc) {
	if err := r.Register(contentType, serialize); err != nil {
		panic(err)
	}
}

// Get retrieves the serializer for a content type.
func (r *Registry) Get(contentType string) (host.SerializeFunc, error) {
	key := host.BaseMime(contentType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	serialize, ok := r.serializers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return serialize, nil
}

// Has reports whether a serializer is registered for contentType.
func (r *Registry) Has(contentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.serializers[host.BaseMime(contentType)]
	return ok
}

// List returns a sorted list of registered content types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.serializers))
	for contentType := range r.serializers {
		types = append(types, contentType)
	}
	sort.Strings(types)
	return types
}

// Negotiate returns the first registered content type named in an Accept
// header, in header order. Wildcards never match.
func (r *Registry) Negotiate(accept string) (string, bool) {
	if strings.TrimSpace(accept) == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, part := range strings.Split(accept, ",") {
		key := host.BaseMime(part)
		if key == "" || strings.Contains(key, "*") {
			continue
		}
		if _, ok := r.serializers[key]; ok {
			return key, true
		}
	}
	return "", false
}
