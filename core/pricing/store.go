package pricing

import (
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// Store holds the rates loaded at startup.
// The rates are validated and fingerprinted once; callers get copies, so
// nothing can change them after construction.
type Store struct {
	rates       types.MaterialRates
	fingerprint string
}

// NewStore validates rates and freezes a private copy
func NewStore(rates types.MaterialRates) (*Store, error) {
	if err := rates.Validate(); err != nil {
		return nil, errors.Config("rates are incomplete", err)
	}
	frozen := rates.Clone()
	return &Store{
		rates:       frozen,
		fingerprint: frozen.Fingerprint(),
	}, nil
}

// MustNewStore is NewStore for rates known to be valid, such as Defaults
func MustNewStore(rates types.MaterialRates) *Store {
	s, err := NewStore(rates)
	if err != nil {
		panic(err)
	}
	return s
}

// Rates returns a copy of the rates
func (s *Store) Rates() types.MaterialRates {
	return s.rates.Clone()
}

// Fingerprint identifies the rates on reports
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// Sources lists the layers the rates were built from
func (s *Store) Sources() []string {
	return append([]string(nil), s.rates.Sources...)
}

// Currency returns the currency all prices are quoted in
func (s *Store) Currency() types.Currency {
	return s.rates.Currency
}
