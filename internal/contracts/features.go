package contracts

import "fmt"

// FeatureSchema is the canonical ordered list of feature names the model
// expects, with a per-feature default (training-set median, 0 when no median
// was recorded). Loaded once at startup, immutable afterwards.
//
// SSOT: feature names and order come from here and nowhere else. The model's
// own introspected names may have been sanitized on load and must never be
// treated as authoritative.
type FeatureSchema struct {
	names    []string
	index    map[string]int
	defaults map[string]float64
}

// NewFeatureSchema builds a schema from an ordered name list and a default
// table. Names must be unique and non-empty; defaults for unknown names are
// ignored.
func NewFeatureSchema(names []string, defaults map[string]float64) (*FeatureSchema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("schema has no features")
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("schema has empty feature name at position %d", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("schema has duplicate feature name %q", name)
		}
		index[name] = i
	}

	kept := make(map[string]float64, len(defaults))
	for name, v := range defaults {
		if _, ok := index[name]; ok {
			kept[name] = v
		}
	}

	ordered := make([]string, len(names))
	copy(ordered, names)

	return &FeatureSchema{names: ordered, index: index, defaults: kept}, nil
}

// Len returns the number of features.
func (s *FeatureSchema) Len() int {
	return len(s.names)
}

// Names returns the feature names in schema order.
func (s *FeatureSchema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether the schema contains the given feature name.
func (s *FeatureSchema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Index returns the position of a feature name in schema order.
func (s *FeatureSchema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Default returns the fallback value for a feature not produced by
// derivation: the training median when recorded, else 0.
func (s *FeatureSchema) Default(name string) float64 {
	return s.defaults[name]
}

// FeatureVector is a complete, schema-ordered numeric vector. After
// alignment its names equal the schema's names exactly, in the same order.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Get returns the value for a feature name.
func (v *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Len returns the vector length.
func (v *FeatureVector) Len() int {
	return len(v.Values)
}

// Clone returns a deep copy. Preprocessing transforms the copy so the
// aligned vector stays untouched for the degraded fallback path.
func (v *FeatureVector) Clone() *FeatureVector {
	names := make([]string, len(v.Names))
	copy(names, v.Names)
	values := make([]float64, len(v.Values))
	copy(values, v.Values)
	return &FeatureVector{Names: names, Values: values}
}
