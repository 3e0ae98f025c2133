package req

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Tag identifies a formal safety or regulatory requirement.
type Tag string

// FieldPath names a leaf field using dotted notation (e.g. "atrial.amplitude").
type FieldPath string

// Registry errors.
var (
	ErrUnknownField      = errors.New("field has no requirement tag")
	ErrUnknownConstraint = errors.New("constraint has no requirement tag")
	ErrDuplicate         = errors.New("duplicate registry entry")
	ErrInvalidEntry      = errors.New("invalid registry entry")
)

// FieldEntry binds a field path to its requirement tag.
type FieldEntry struct {
	Path FieldPath `yaml:"path"`
	Tag  Tag       `yaml:"tag"`
}

// ConstraintEntry binds a cross-field rule to its requirement tag.
type ConstraintEntry struct {
	ID  string `yaml:"id"`
	Tag Tag    `yaml:"tag"`
}

// Registry maps field paths and constraint IDs to requirement tags.
type Registry struct {
	name        string
	fields      map[FieldPath]Tag
	fieldOrder  []FieldPath
	constraints map[string]Tag
	constOrder  []string
}

// New creates a registry from field and constraint entries.
// Tags must be unique across both sets; paths and IDs must be unique within theirs.
func New(name string, fields []FieldEntry, constraints []ConstraintEntry) (*Registry, error) {
	r := &Registry{
		name:        name,
		fields:      make(map[FieldPath]Tag, len(fields)),
		fieldOrder:  make([]FieldPath, 0, len(fields)),
		constraints: make(map[string]Tag, len(constraints)),
		constOrder:  make([]string, 0, len(constraints)),
	}
	seenTags := make(map[Tag]string)

	claim := func(tag Tag, owner string) error {
		if strings.TrimSpace(string(tag)) == "" {
			return fmt.Errorf("%w: %s has an empty tag", ErrInvalidEntry, owner)
		}
		if prev, ok := seenTags[tag]; ok {
			return fmt.Errorf("%w: tag %q used by %s and %s", ErrDuplicate, tag, prev, owner)
		}
		seenTags[tag] = owner
		return nil
	}

	for _, e := range fields {
		if strings.TrimSpace(string(e.Path)) == "" {
			return nil, fmt.Errorf("%w: empty field path", ErrInvalidEntry)
		}
		if _, ok := r.fields[e.Path]; ok {
			return nil, fmt.Errorf("%w: field %q registered twice", ErrDuplicate, e.Path)
		}
		if err := claim(e.Tag, "field "+string(e.Path)); err != nil {
			return nil, err
		}
		r.fields[e.Path] = e.Tag
		r.fieldOrder = append(r.fieldOrder, e.Path)
	}

	for _, e := range constraints {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("%w: empty constraint id", ErrInvalidEntry)
		}
		if _, ok := r.constraints[e.ID]; ok {
			return nil, fmt.Errorf("%w: constraint %q registered twice", ErrDuplicate, e.ID)
		}
		if err := claim(e.Tag, "constraint "+e.ID); err != nil {
			return nil, err
		}
		r.constraints[e.ID] = e.Tag
		r.constOrder = append(r.constOrder, e.ID)
	}

	return r, nil
}

// Name returns the requirement group of this registry (e.g. "param").
func (r *Registry) Name() string {
	return r.name
}

// TagFor returns the requirement tag bound to a field path.
func (r *Registry) TagFor(path FieldPath) (Tag, error) {
	tag, ok := r.fields[path]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return tag, nil
}

// MustTagFor is like TagFor but panics if the path is not registered.
// Intended for wiring code whose field set is fixed at compile time.
func (r *Registry) MustTagFor(path FieldPath) Tag {
	tag, err := r.TagFor(path)
	if err != nil {
		panic(err)
	}
	return tag
}

// ConstraintTag returns the requirement tag bound to a constraint ID.
func (r *Registry) ConstraintTag(id string) (Tag, error) {
	tag, ok := r.constraints[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownConstraint, id)
	}
	return tag, nil
}

// AllFieldPaths returns every registered field path in registration order.
func (r *Registry) AllFieldPaths() []FieldPath {
	return slices.Clone(r.fieldOrder)
}

// Fields returns all field entries in registration order.
func (r *Registry) Fields() []FieldEntry {
	entries := make([]FieldEntry, len(r.fieldOrder))
	for i, p := range r.fieldOrder {
		entries[i] = FieldEntry{Path: p, Tag: r.fields[p]}
	}
	return entries
}

// Constraints returns all constraint entries in registration order.
func (r *Registry) Constraints() []ConstraintEntry {
	entries := make([]ConstraintEntry, len(r.constOrder))
	for i, id := range r.constOrder {
		entries[i] = ConstraintEntry{ID: id, Tag: r.constraints[id]}
	}
	return entries
}

// Has reports whether the field path is registered.
func (r *Registry) Has(path FieldPath) bool {
	_, ok := r.fields[path]
	return ok
}

// Count returns the number of registered fields.
func (r *Registry) Count() int {
	return len(r.fieldOrder)
}

// CheckComplete verifies the registered fields are exactly want.
// It returns an *IntegrityError describing any missing or extra paths.
func (r *Registry) CheckComplete(want []FieldPath) error {
	ie := &IntegrityError{Registry: r.name}

	wanted := make(map[FieldPath]int, len(want))
	for _, p := range want {
		wanted[p]++
		if wanted[p] == 2 {
			ie.Duplicated = append(ie.Duplicated, p)
		}
		if wanted[p] == 1 && !r.Has(p) {
			ie.Missing = append(ie.Missing, p)
		}
	}
	for _, p := range r.fieldOrder {
		if wanted[p] == 0 {
			ie.Extra = append(ie.Extra, p)
		}
	}

	if ie.empty() {
		return nil
	}
	return ie
}

// IntegrityError reports a mismatch between a registry and a data model.
type IntegrityError struct {
	Registry   string
	Missing    []FieldPath // declared by the model, not registered
	Extra      []FieldPath // registered, not declared by the model
	Duplicated []FieldPath // declared more than once by the model
}

func (e *IntegrityError) empty() bool {
	return len(e.Missing) == 0 && len(e.Extra) == 0 && len(e.Duplicated) == 0
}

func (e *IntegrityError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+joinPaths(e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "extra "+joinPaths(e.Extra))
	}
	if len(e.Duplicated) > 0 {
		parts = append(parts, "duplicated "+joinPaths(e.Duplicated))
	}
	return fmt.Sprintf("requirement registry %q incomplete: %s", e.Registry, strings.Join(parts, "; "))
}

func joinPaths(paths []FieldPath) string {
	s := make([]string, len(paths))
	for i, p := range paths {
		s[i] = string(p)
	}
	return strings.Join(s, ", ")
}
