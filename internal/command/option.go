package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// OptionKind is the closed set of shapes an interaction option can take.
type OptionKind int

const (
	OptionValue OptionKind = iota
	OptionSubcommand
	OptionSubcommandGroup
)

func (k OptionKind) String() string {
	switch k {
	case OptionValue:
		return "value"
	case OptionSubcommand:
		return "subcommand"
	case OptionSubcommandGroup:
		return "subcommand group"
	default:
		return fmt.Sprintf("option kind(%d)", int(k))
	}
}

// Option is one node of an interaction's option tree.
type Option struct {
	Name string
	Kind OptionKind

	// Type and Value are set for OptionValue.
	Type  discordgo.ApplicationCommandOptionType
	Value any

	// Options holds nested options of a subcommand or subcommand group.
	Options []Option
}

// Options is the ordered list of value options passed to a leaf handler.
type Options []Option

// Get returns the option with the given name.
func (o Options) Get(name string) (Option, bool) {
	for _, opt := range o {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

// String returns a string option value.
func (o Options) String(name string) (string, bool) {
	opt, ok := o.Get(name)
	if !ok {
		return "", false
	}
	s, ok := opt.Value.(string)
	return s, ok
}

// Bool returns a boolean option value.
func (o Options) Bool(name string) (bool, bool) {
	opt, ok := o.Get(name)
	if !ok {
		return false, false
	}
	b, ok := opt.Value.(bool)
	return b, ok
}

// Int returns an integer option value. Discord delivers numbers as JSON
// floats, so both representations are accepted.
func (o Options) Int(name string) (int64, bool) {
	opt, ok := o.Get(name)
	if !ok {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// ID returns a user, channel, role or mentionable option as a snowflake.
func (o Options) ID(name string) (snowflake.ID, bool) {
	s, ok := o.String(name)
	if !ok {
		return 0, false
	}
	id, err := snowflake.Parse(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FromDiscord converts a discordgo application command interaction.
func FromDiscord(i *discordgo.InteractionCreate) Interaction {
	data := i.ApplicationCommandData()

	in := Interaction{
		CommandName: data.Name,
		Options:     convertOptions(data.Options),
	}
	if id, err := snowflake.Parse(i.GuildID); err == nil {
		in.GuildID = id
	}
	if id, err := snowflake.Parse(data.TargetID); err == nil {
		in.TargetID = id
	}

	var userID string
	switch {
	case i.Member != nil && i.Member.User != nil:
		userID = i.Member.User.ID
	case i.User != nil:
		userID = i.User.ID
	}
	if id, err := snowflake.Parse(userID); err == nil {
		in.InvokerID = id
	}

	return in
}

func convertOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) []Option {
	if len(opts) == 0 {
		return nil
	}

	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		opt := Option{Name: o.Name, Options: convertOptions(o.Options)}
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand:
			opt.Kind = OptionSubcommand
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			opt.Kind = OptionSubcommandGroup
		default:
			opt.Kind = OptionValue
			opt.Type = o.Type
			opt.Value = o.Value
		}
		out = append(out, opt)
	}
	return out
}
