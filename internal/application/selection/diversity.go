// Package selection picks parameter values that avoid recent repetition.
package selection

import (
	"math/rand/v2"

	"github.com/doeshing/texturepro/internal/domain"
)

// Rand is the randomness source. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Selector picks diverse values from a catalog.
type Selector struct {
	rng Rand
}

// New returns a Selector using rng, or the global source when rng is nil.
func New(rng Rand) *Selector {
	if rng == nil {
		rng = globalRand{}
	}
	return &Selector{rng: rng}
}

// PickDiverse returns a catalog value for key that does not appear in history
// and differs from current. Once every value has been used recently it falls
// back to any value other than current, or to the whole catalog when current
// is empty. An empty catalog yields "".
func (s *Selector) PickDiverse(history domain.HistoryLog, catalog []string, key domain.ParameterKey, current string) string {
	if len(catalog) == 0 {
		return ""
	}

	used := make(map[string]struct{}, len(history)+1)
	for _, value := range history.Values(key) {
		used[value] = struct{}{}
	}
	if current != "" {
		used[current] = struct{}{}
	}

	unused := make([]string, 0, len(catalog))
	for _, option := range catalog {
		if _, seen := used[option]; !seen {
			unused = append(unused, option)
		}
	}
	if len(unused) > 0 {
		return s.pick(unused)
	}

	if current == "" {
		return s.pick(catalog)
	}
	rest := make([]string, 0, len(catalog))
	for _, option := range catalog {
		if option != current {
			rest = append(rest, option)
		}
	}
	if len(rest) == 0 {
		// single-entry catalog
		return catalog[0]
	}
	return s.pick(rest)
}

// PickAll runs PickDiverse independently for every parameter key, excluding
// the matching field of current.
func (s *Selector) PickAll(history domain.HistoryLog, catalogs domain.Catalogs, current domain.PartialParameters) domain.Parameters {
	var out domain.Parameters
	for _, key := range domain.ParameterKeys {
		out = out.With(key, s.PickDiverse(history, catalogs.For(key), key, current.Get(key)))
	}
	return out
}

func (s *Selector) pick(options []string) string {
	return options[s.rng.IntN(len(options))]
}
