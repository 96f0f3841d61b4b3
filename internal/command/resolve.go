package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// Routing errors. A RoutingError unwraps to exactly one of these.
var (
	ErrUnknownCommand      = errors.New("unknown command")
	ErrMissingSubcommand   = errors.New("missing subcommand")
	ErrMalformedOptionTree = errors.New("malformed option tree")
)

// Reason classifies why an interaction could not be routed.
type Reason int

const (
	UnknownCommand Reason = iota + 1
	MissingSubcommand
	MalformedOptionTree
)

func (r Reason) String() string {
	switch r {
	case UnknownCommand:
		return "unknown command"
	case MissingSubcommand:
		return "missing subcommand"
	case MalformedOptionTree:
		return "malformed option tree"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// RoutingError describes an interaction that does not match the schema.
type RoutingError struct {
	Reason  Reason
	Command string
	Path    []string
	Detail  string
}

func (e *RoutingError) Error() string {
	target := strings.Join(append([]string{e.Command}, e.Path...), " ")
	if e.Detail == "" {
		return fmt.Sprintf("%s: /%s", e.Reason, target)
	}
	return fmt.Sprintf("%s: /%s: %s", e.Reason, target, e.Detail)
}

func (e *RoutingError) Unwrap() error {
	switch e.Reason {
	case UnknownCommand:
		return ErrUnknownCommand
	case MissingSubcommand:
		return ErrMissingSubcommand
	default:
		return ErrMalformedOptionTree
	}
}

// Interaction is an inbound command invocation reduced to what routing needs.
type Interaction struct {
	CommandName string
	Options     []Option
	GuildID     snowflake.ID // zero outside a guild
	InvokerID   snowflake.ID

	// TargetID is the user or message a context menu was opened on.
	TargetID snowflake.ID
}

// Invocation is an interaction resolved to a leaf of the schema.
type Invocation struct {
	CommandName string
	HandlerKey  string
	// Path holds the subcommand group and subcommand names, 0 to MaxDepth long.
	Path    []string
	Options Options

	// TargetID is carried over from the interaction of a context menu.
	TargetID snowflake.ID
}

// Resolve maps an interaction onto a leaf of the schema. Resolution is purely
// structural: option values are never inspected.
func Resolve(schema *Schema, in Interaction) (*Invocation, error) {
	root := schema.Root(in.CommandName)
	if root == nil {
		return nil, &RoutingError{Reason: UnknownCommand, Command: in.CommandName}
	}

	leaf, opts, path, err := descend(root, in.Options, nil)
	if err != nil {
		err.Command = in.CommandName
		return nil, err
	}

	if path == nil {
		path = []string{}
	}
	return &Invocation{
		CommandName: in.CommandName,
		HandlerKey:  leaf.HandlerKey(),
		Path:        path,
		Options:     Options(opts),
		TargetID:    in.TargetID,
	}, nil
}

// descend walks at most MaxDepth levels below node, following the first
// option at each level.
func descend(node *Node, opts []Option, path []string) (*Node, []Option, []string, *RoutingError) {
	if node.IsLeaf() {
		return node, opts, path, nil
	}
	if len(path) >= MaxDepth {
		return nil, nil, nil, &RoutingError{
			Reason: MalformedOptionTree,
			Path:   path,
			Detail: "nested deeper than the schema allows",
		}
	}
	if len(opts) == 0 {
		if node.Kind == KindSubcommandGroup {
			return nil, nil, nil, &RoutingError{
				Reason: MalformedOptionTree,
				Path:   path,
				Detail: "subcommand group carries no subcommand",
			}
		}
		return nil, nil, nil, &RoutingError{Reason: MissingSubcommand, Path: path}
	}

	first := opts[0]
	if node.Kind == KindSubcommandGroup && len(opts) != 1 {
		return nil, nil, nil, &RoutingError{
			Reason: MalformedOptionTree,
			Path:   path,
			Detail: fmt.Sprintf("subcommand group carries %d options", len(opts)),
		}
	}

	var want Kind
	switch first.Kind {
	case OptionSubcommand:
		want = KindSubcommand
	case OptionSubcommandGroup:
		want = KindSubcommandGroup
	default:
		return nil, nil, nil, &RoutingError{
			Reason: MalformedOptionTree,
			Path:   path,
			Detail: fmt.Sprintf("expected a subcommand, got value option %q", first.Name),
		}
	}

	child := node.Child(first.Name)
	if child == nil {
		return nil, nil, nil, &RoutingError{
			Reason: UnknownCommand,
			Path:   append(path, first.Name),
		}
	}
	if child.Kind != want {
		return nil, nil, nil, &RoutingError{
			Reason: MalformedOptionTree,
			Path:   append(path, first.Name),
			Detail: fmt.Sprintf("declared as %s, received as %s", child.Kind, first.Kind),
		}
	}

	return descend(child, first.Options, append(path, first.Name))
}
