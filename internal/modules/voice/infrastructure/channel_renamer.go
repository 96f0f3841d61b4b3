package infrastructure

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/voice/application"
)

type channelEditor interface {
	ChannelEdit(
		channelID string,
		data *discordgo.ChannelEdit,
		options ...discordgo.RequestOption,
	) (*discordgo.Channel, error)
}

// ChannelRenamer renames channels over REST.
type ChannelRenamer struct {
	session channelEditor
}

// NewChannelRenamer creates a new ChannelRenamer.
func NewChannelRenamer(session channelEditor) *ChannelRenamer {
	return &ChannelRenamer{session: session}
}

// RenameChannel sets the name of a channel.
func (r *ChannelRenamer) RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error {
	_, err := r.session.ChannelEdit(
		channelID.String(),
		&discordgo.ChannelEdit{Name: name},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to rename channel %s: %w", channelID, err)
	}
	return nil
}

var _ application.ChannelRenamer = (*ChannelRenamer)(nil)
