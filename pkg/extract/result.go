// Package extract implements the capacity and price extraction engine:
// layered pattern rules that turn free-form listing titles and display
// price text into structured values, plus the variation payload resolver.
package extract

// Kind classifies the outcome of an extraction.
type Kind string

// Extraction outcome constants.
const (
	// KindFound means exactly one plausible value was extracted.
	KindFound Kind = "found"
	// KindNotFound means no plausible value survived the pattern rules.
	KindNotFound Kind = "not_found"
	// KindAmbiguous means multiple plausible candidates were found and the
	// documented priority rule picked one. Ambiguity is informational,
	// never fatal: Value holds the resolved candidate.
	KindAmbiguous Kind = "ambiguous"
)

// Result is the outcome of a single extraction attempt. For KindAmbiguous
// the full candidate set is retained so callers can log how the priority
// rule resolved it.
type Result[T any] struct {
	Kind       Kind
	Value      T
	Candidates []T
}

// Found builds a single-candidate result.
func Found[T any](v T) Result[T] {
	return Result[T]{Kind: KindFound, Value: v}
}

// NotFound builds an empty result.
func NotFound[T any]() Result[T] {
	return Result[T]{Kind: KindNotFound}
}

// Ambiguous builds a multi-candidate result resolved to the given value.
func Ambiguous[T any](resolved T, candidates []T) Result[T] {
	return Result[T]{Kind: KindAmbiguous, Value: resolved, Candidates: candidates}
}

// Ok reports whether a value was extracted. Ambiguous results count as ok
// since the priority rule always resolves them.
func (r Result[T]) Ok() bool {
	return r.Kind != KindNotFound
}
