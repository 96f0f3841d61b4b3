package presentation

import (
	"context"

	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/welcome/application"
)

// GreetHandler handles the /welcome lmao command.
type GreetHandler struct {
	interactor *application.GreetInteractor
}

// NewGreetHandler creates a new GreetHandler.
func NewGreetHandler() *GreetHandler {
	return &GreetHandler{
		interactor: application.NewGreetInteractor(),
	}
}

// Handle processes the greeting and sends the response.
func (h *GreetHandler) Handle(_ context.Context, it *bot.Interaction) error {
	target, _ := it.Options().ID("user")
	result := h.interactor.Execute(target)

	return bot.Reply(it.Responder, result.Message)
}

// ChantHandler handles the /welcome group fah command.
type ChantHandler struct {
	interactor *application.ChantInteractor
}

// NewChantHandler creates a new ChantHandler.
func NewChantHandler() *ChantHandler {
	return &ChantHandler{
		interactor: application.NewChantInteractor(),
	}
}

// Handle sends the chant.
func (h *ChantHandler) Handle(_ context.Context, it *bot.Interaction) error {
	return bot.Reply(it.Responder, h.interactor.Execute().Response)
}
