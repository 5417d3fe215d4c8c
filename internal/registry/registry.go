package registry

import (
	"strings"

	"github.com/DEATHAIsol/instantfi/pkg/integrations/memcache"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"

	"github.com/pkg/errors"
)

var (
	ErrEmptyLocalID     = errors.New("descriptor local id cannot be empty")
	ErrDuplicateLocalID = errors.New("duplicate descriptor local id")
	ErrDuplicateSymbol  = errors.New("duplicate descriptor symbol")
)

// Registry is the immutable catalog of tracked tokens.
type Registry struct {
	descriptors []market.AssetDescriptor
	bySymbol    *memcache.Cache[string, int]
	byLocalID   *memcache.Cache[string, int]
}

func New(descriptors ...market.AssetDescriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make([]market.AssetDescriptor, 0, len(descriptors)),
		bySymbol:    memcache.New[string, int](),
		byLocalID:   memcache.New[string, int](),
	}

	for i, d := range descriptors {
		if d.LocalID == "" {
			return nil, errors.Wrapf(ErrEmptyLocalID, "descriptor %d", i)
		}
		if !r.byLocalID.SetIfAbsent(d.LocalID, i) {
			return nil, errors.Wrap(ErrDuplicateLocalID, d.LocalID)
		}
		if !r.bySymbol.SetIfAbsent(symbolKey(d.Symbol), i) {
			return nil, errors.Wrap(ErrDuplicateSymbol, d.Symbol)
		}
		r.descriptors = append(r.descriptors, d)
	}

	return r, nil
}

// Default returns the catalog shipped with the dashboard.
func Default() *Registry {
	r, err := New(defaultDescriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the catalog in registry order. The slice is a copy.
func (r *Registry) List() []market.AssetDescriptor {
	out := make([]market.AssetDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

func (r *Registry) Len() int {
	return len(r.descriptors)
}

// ProviderIDs returns the distinct, non-empty provider ids in registry order.
func (r *Registry) ProviderIDs() []string {
	ids := make([]string, 0, len(r.descriptors))
	seen := make(map[string]struct{}, len(r.descriptors))
	for _, d := range r.descriptors {
		if !d.HasProviderID() {
			continue
		}
		if _, dup := seen[d.ProviderID]; dup {
			continue
		}
		seen[d.ProviderID] = struct{}{}
		ids = append(ids, d.ProviderID)
	}
	return ids
}

// Lookup finds a descriptor by symbol, ignoring case.
func (r *Registry) Lookup(symbol string) (market.AssetDescriptor, bool) {
	i, ok := r.bySymbol.Get(symbolKey(symbol))
	if !ok {
		return market.AssetDescriptor{}, false
	}
	return r.descriptors[i], true
}

// Index returns the registry position of localID, or -1.
func (r *Registry) Index(localID string) int {
	i, ok := r.byLocalID.Get(localID)
	if !ok {
		return -1
	}
	return i
}

func symbolKey(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}
