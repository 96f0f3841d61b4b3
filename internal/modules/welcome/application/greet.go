package application

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/welcome/domain"
)

// GreetInteractor handles the greeting use case.
type GreetInteractor struct{}

// NewGreetInteractor creates a new GreetInteractor.
func NewGreetInteractor() *GreetInteractor {
	return &GreetInteractor{}
}

// Execute greets target and returns the result.
func (g *GreetInteractor) Execute(target snowflake.ID) *domain.Greeting {
	return domain.NewGreeting(target)
}
