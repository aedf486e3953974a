package bindmeta

import (
	"reflect"
	"sort"
	"sync"
)

// DuplicatePolicy decides what happens when a parameter is bound twice
type DuplicatePolicy int

const (
	// RejectDuplicates fails the second registration with ErrDuplicateBinding
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates overwrites the earlier record in place
	ReplaceDuplicates
	// KeepDuplicates stores both records; consumers should use the last one
	KeepDuplicates
)

// String returns the string representation of the policy
func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case ReplaceDuplicates:
		return "replace"
	case KeepDuplicates:
		return "keep"
	default:
		return "unknown"
	}
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithDuplicatePolicy sets how repeated bindings of one parameter are handled
func WithDuplicatePolicy(p DuplicatePolicy) RegistryOption {
	return func(r *Registry) {
		r.policy = p
	}
}

// WithTypeResolver replaces the resolver used by decorators applied to this registry
func WithTypeResolver(resolver TypeResolver) RegistryOption {
	return func(r *Registry) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

// WithValidator adds a check that every record must pass before it is stored
func WithValidator(validate func(ParamMetadata) error) RegistryOption {
	return func(r *Registry) {
		if validate != nil {
			r.validators = append(r.validators, validate)
		}
	}
}

// Registry is the append-only store of parameter bindings.
// Records are kept in registration order.
type Registry struct {
	mu         sync.RWMutex
	records    []ParamMetadata
	frozen     bool
	policy     DuplicatePolicy
	resolver   TypeResolver
	validators []func(ParamMetadata) error
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		records:  make([]ParamMetadata, 0),
		policy:   RejectDuplicates,
		resolver: MethodResolver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, creating it on first use
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Add validates md and stores it according to the duplicate policy
func (r *Registry) Add(md ParamMetadata) error {
	if md.DeclaredType == nil {
		md.DeclaredType = UnknownType
	}
	if err := md.Validate(); err != nil {
		return err
	}
	for _, validate := range r.validators {
		if err := validate(md); err != nil {
			return registrationError(md, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return registrationError(md, ErrRegistryFrozen)
	}

	if r.policy != KeepDuplicates {
		for i, existing := range r.records {
			if existing.Target != md.Target || existing.Method != md.Method || existing.Index != md.Index {
				continue
			}
			if r.policy == RejectDuplicates {
				return registrationError(md, ErrDuplicateBinding)
			}
			r.records[i] = md
			return nil
		}
	}

	r.records = append(r.records, md)
	return nil
}

// Resolver returns the type resolver decorators use for this registry
func (r *Registry) Resolver() TypeResolver {
	return r.resolver
}

// Policy returns the duplicate policy of the registry
func (r *Registry) Policy() DuplicatePolicy {
	return r.policy
}

// Records returns a copy of every record in registration order
func (r *Registry) Records() []ParamMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ParamMetadata(nil), r.records...)
}

// ForMethod returns the records of one method ordered by parameter index.
// Under KeepDuplicates, records sharing an index stay in registration order.
func (r *Registry) ForMethod(target reflect.Type, method string) []ParamMetadata {
	r.mu.RLock()
	var filtered []ParamMetadata
	for _, md := range r.records {
		if md.Target == target && md.Method == method {
			filtered = append(filtered, md)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Index < filtered[j].Index
	})
	return filtered
}

// ForTarget returns the records of one controller ordered by method name, then index
func (r *Registry) ForTarget(target reflect.Type) []ParamMetadata {
	r.mu.RLock()
	var filtered []ParamMetadata
	for _, md := range r.records {
		if md.Target == target {
			filtered = append(filtered, md)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Method != filtered[j].Method {
			return filtered[i].Method < filtered[j].Method
		}
		return filtered[i].Index < filtered[j].Index
	})
	return filtered
}

// Len returns the number of stored records
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Freeze makes the registry read-only; later Add calls fail with ErrRegistryFrozen
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called since the last Reset
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Reset drops every record and unfreezes the registry. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.records = make([]ParamMetadata, 0)
	r.frozen = false
	r.mu.Unlock()
}

// Records returns every record of the default registry
func Records() []ParamMetadata {
	return DefaultRegistry().Records()
}

// Lookup returns the records of one method from the default registry
func Lookup(target any, method string) []ParamMetadata {
	t, err := TargetOf(target)
	if err != nil {
		return nil
	}
	return DefaultRegistry().ForMethod(t, method)
}

// Reset clears the default registry
func Reset() {
	DefaultRegistry().Reset()
}
