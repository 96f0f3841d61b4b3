package deploy

import "errors"

var (
	// ErrInvalidMode is returned for a deployment mode other than production or development.
	ErrInvalidMode = errors.New("invalid deployment mode")

	// ErrMissingDevGuild is returned when development mode has no guild to deploy to.
	ErrMissingDevGuild = errors.New("development mode requires a development guild")

	// ErrInvalidScope is returned when a clear scope is neither "*" nor a guild id.
	ErrInvalidScope = errors.New("invalid clear scope")

	// ErrIncompleteDeployment is returned when the platform does not echo back
	// every command that was pushed.
	ErrIncompleteDeployment = errors.New("deployed command set is incomplete")

	// ErrBotOwnerRequired is returned when permissions are synced in development
	// mode without a configured bot owner.
	ErrBotOwnerRequired = errors.New("development mode permission sync requires a bot owner")

	// ErrUnknownCommandID is returned when a restricted command has no live id.
	ErrUnknownCommandID = errors.New("no deployed id for restricted command")
)
