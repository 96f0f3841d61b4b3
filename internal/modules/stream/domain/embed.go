package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
)

// Discord embed limits.
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
)

// Validation errors.
var (
	ErrTitleTooLong       = fmt.Errorf("stream titles can be at most %d characters", MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("stream descriptions can be at most %d characters", MaxDescriptionLength)
	ErrInvalidThumbnail   = errors.New("the thumbnail must be an http or https link")
)

// Streamer identifies the member announcing a stream.
type Streamer struct {
	ID        snowflake.ID
	Name      string
	AvatarURL string
}

// StreamEmbed is the announcement posted to a guild's stream channel.
type StreamEmbed struct {
	Streamer     Streamer
	Title        string
	Description  string
	ThumbnailURL string
	PostedAt     time.Time
}

// NewStreamEmbed validates the announcement fields. An empty title falls back
// to "<name> is streaming".
func NewStreamEmbed(
	streamer Streamer,
	title, description, thumbnail string,
	postedAt time.Time,
) (*StreamEmbed, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	thumbnail = strings.TrimSpace(thumbnail)

	if title == "" {
		title = streamer.Name + " is streaming"
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	if thumbnail != "" && !isWebURL(thumbnail) {
		return nil, ErrInvalidThumbnail
	}

	return &StreamEmbed{
		Streamer:     streamer,
		Title:        title,
		Description:  description,
		ThumbnailURL: thumbnail,
		PostedAt:     postedAt,
	}, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
