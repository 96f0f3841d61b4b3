package domain

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// WelcomeEmote is the custom emote every greeting carries.
const WelcomeEmote = "<:asdf:798534948679843840>"

// Greeting represents the reply to /welcome lmao.
type Greeting struct {
	Message   string
	TargetID  snowflake.ID
	Timestamp time.Time
}

// NewGreeting creates a Greeting for target. A zero target greets nobody in
// particular.
func NewGreeting(target snowflake.ID) *Greeting {
	message := WelcomeEmote
	if target != 0 {
		message = fmt.Sprintf("Welcome, <@%s>! %s", target, WelcomeEmote)
	}

	return &Greeting{
		Message:   message,
		TargetID:  target,
		Timestamp: time.Now(),
	}
}
