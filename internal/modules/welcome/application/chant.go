package application

import "github.com/sglre6355/emotebot/internal/modules/welcome/domain"

// ChantInteractor handles the fah use case.
type ChantInteractor struct{}

// NewChantInteractor creates a new ChantInteractor.
func NewChantInteractor() *ChantInteractor {
	return &ChantInteractor{}
}

// Execute returns the chant.
func (c *ChantInteractor) Execute() *domain.Chant {
	return domain.NewChant()
}
