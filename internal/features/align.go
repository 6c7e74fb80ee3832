package features

import "github.com/finlab/credscore/internal/contracts"

// Align overlays derived values onto the schema defaults, producing a
// complete vector in schema order with no missing entries. This is the
// single alignment point: any name or order mismatch between derivation
// output and model expectations is resolved here and nowhere else.
//
// Derived names that do not appear in the schema are dropped — the
// derivation engine emits the full engineered set, the schema decides which
// features the fitted model actually consumes.
func Align(derived map[string]float64, s *contracts.FeatureSchema) *contracts.FeatureVector {
	names := s.Names()
	values := make([]float64, len(names))

	for i, name := range names {
		if v, ok := derived[name]; ok {
			values[i] = v
		} else {
			values[i] = s.Default(name)
		}
	}

	return &contracts.FeatureVector{Names: names, Values: values}
}

// VerifyAligned checks that a vector's names equal the schema's names in
// schema order. A correct Align makes failure structurally impossible; this
// is an internal consistency check for callers that received a vector from
// elsewhere.
func VerifyAligned(vec *contracts.FeatureVector, s *contracts.FeatureSchema) error {
	names := s.Names()

	if len(vec.Names) == len(names) {
		ordered := true
		for i, name := range names {
			if vec.Names[i] != name {
				ordered = false
				break
			}
		}
		if ordered {
			return nil
		}
	}

	have := make(map[string]bool, len(vec.Names))
	for _, name := range vec.Names {
		have[name] = true
	}

	mismatch := &contracts.SchemaMismatchError{}
	for _, name := range names {
		if !have[name] {
			mismatch.Missing = append(mismatch.Missing, name)
		}
	}
	for _, name := range vec.Names {
		if !s.Has(name) {
			mismatch.Extra = append(mismatch.Extra, name)
		}
	}
	return mismatch
}
