package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// MaxDistance is the furthest back a message can be addressed by distance.
// It matches the page size of the channel messages endpoint.
const MaxDistance = 100

// ErrInvalidTarget is returned when a target cannot be understood.
var ErrInvalidTarget = errors.New(
	"the target must be a distance (1-100), a message ID, a channel-message ID pair or a message link")

var messageLinkPattern = regexp.MustCompile(
	`^https://(?:(?:ptb|canary)\.)?discord(?:app)?\.com/channels/(?:\d+|@me)/(\d+)/(\d+)/?$`)

// Target addresses the message to react to. Either Distance is set, counting
// back from the newest message of the invoking channel, or MessageID is.
type Target struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Distance  int
}

// ParseTarget reads a target relative to the invoking channel. An empty
// target is the newest message.
func ParseTarget(raw string, channelID snowflake.ID) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{ChannelID: channelID, Distance: 1}, nil
	}

	if m := messageLinkPattern.FindStringSubmatch(raw); m != nil {
		return pair(m[1], m[2])
	}
	if channel, message, ok := strings.Cut(raw, "-"); ok {
		return pair(channel, message)
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return Target{}, ErrInvalidTarget
	}
	if n <= MaxDistance {
		return Target{ChannelID: channelID, Distance: int(n)}, nil
	}
	return Target{ChannelID: channelID, MessageID: snowflake.ID(n)}, nil
}

func pair(channel, message string) (Target, error) {
	channelID, err := snowflake.Parse(channel)
	if err != nil || channelID == 0 {
		return Target{}, ErrInvalidTarget
	}
	messageID, err := snowflake.Parse(message)
	if err != nil || messageID == 0 {
		return Target{}, ErrInvalidTarget
	}
	return Target{ChannelID: channelID, MessageID: messageID}, nil
}
