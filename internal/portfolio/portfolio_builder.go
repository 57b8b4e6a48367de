package portfolio

import "github.com/Carmen-Shannon/oxy-folio/common"

// Option is a functional option for configuring a Portfolio.
type Option func(*Portfolio)

// WithRand sets the random source that scatters the stars, overriding the configured seed.
//
// Parameters:
//   - rng: the source, *rand.Rand from math/rand/v2 satisfies it
//
// Returns:
//   - Option: option function to apply
func WithRand(rng common.Float32Source) Option {
	return func(p *Portfolio) {
		p.rng = rng
	}
}
