package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MaxDepth is the deepest a leaf may sit below its root command.
const MaxDepth = 2

// ErrInvalidSchema is returned when a command tree breaks the tree rules.
var ErrInvalidSchema = errors.New("invalid command schema")

var (
	namePattern = regexp.MustCompile(`^[-_\p{Ll}\p{N}]{1,32}$`)

	// Context menu names are shown as is, so case and spaces are allowed.
	menuNamePattern = regexp.MustCompile(`^[-_ \p{L}\p{N}]{1,32}$`)
)

// Kind identifies where a node sits in a command tree.
type Kind int

const (
	KindCommand Kind = iota + 1
	KindSubcommandGroup
	KindSubcommand
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindSubcommandGroup:
		return "subcommand group"
	case KindSubcommand:
		return "subcommand"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one entry of the command tree. A node either has children or is a
// leaf bound to exactly one handler.
type Node struct {
	Name        string
	Description string
	Kind        Kind
	Children    []*Node

	// Params are the value options of a leaf.
	Params []*discordgo.ApplicationCommandOption

	// Restricted marks a root command as disabled by default until a
	// per-guild permission grant is pushed.
	Restricted bool

	// Type is the application command type of a root. Zero means a chat
	// input command.
	Type discordgo.ApplicationCommandType

	handlerKey string
}

// NewCommand creates a root command with subcommands or subcommand groups.
func NewCommand(name, description string, children ...*Node) *Node {
	return &Node{Name: name, Description: description, Kind: KindCommand, Children: children}
}

// NewLeafCommand creates a root command that is itself a leaf.
func NewLeafCommand(
	name, description string,
	params ...*discordgo.ApplicationCommandOption,
) *Node {
	return &Node{Name: name, Description: description, Kind: KindCommand, Params: params}
}

// NewMessageCommand creates a message context menu entry. It is a leaf
// without description or parameters.
func NewMessageCommand(name string) *Node {
	return &Node{Name: name, Kind: KindCommand, Type: discordgo.MessageApplicationCommand}
}

// NewGroup creates a subcommand group.
func NewGroup(name, description string, subcommands ...*Node) *Node {
	return &Node{
		Name:        name,
		Description: description,
		Kind:        KindSubcommandGroup,
		Children:    subcommands,
	}
}

// NewSubcommand creates a subcommand leaf.
func NewSubcommand(
	name, description string,
	params ...*discordgo.ApplicationCommandOption,
) *Node {
	return &Node{Name: name, Description: description, Kind: KindSubcommand, Params: params}
}

// Restrict marks the node as restricted and returns it.
func (n *Node) Restrict() *Node {
	n.Restricted = true
	return n
}

// IsContextMenu reports whether the node is a user or message context menu
// entry.
func (n *Node) IsContextMenu() bool {
	return n.Type == discordgo.UserApplicationCommand || n.Type == discordgo.MessageApplicationCommand
}

// IsLeaf reports whether the node is bound to a handler.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HandlerKey returns the dotted path of a leaf within its schema, e.g.
// "config.default-voice". It is empty for non-leaf nodes and for nodes that
// have not been through NewSchema.
func (n *Node) HandlerKey() string {
	return n.handlerKey
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Schema is the validated, immutable command forest.
type Schema struct {
	roots  []*Node
	byName map[string]*Node
	leaves []*Node
}

// NewSchema validates the given roots and returns a frozen copy of them.
func NewSchema(roots ...*Node) (*Schema, error) {
	s := &Schema{
		roots:  make([]*Node, 0, len(roots)),
		byName: make(map[string]*Node, len(roots)),
	}

	for _, r := range roots {
		if r == nil {
			return nil, fmt.Errorf("%w: nil root command", ErrInvalidSchema)
		}
		if r.Kind != KindCommand {
			return nil, fmt.Errorf("%w: root %q is a %s", ErrInvalidSchema, r.Name, r.Kind)
		}
		if _, dup := s.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate command %q", ErrInvalidSchema, r.Name)
		}

		root := cloneNode(r)
		freeze := s.freeze
		if root.IsContextMenu() {
			freeze = s.freezeMenu
		} else if root.Type != 0 && root.Type != discordgo.ChatApplicationCommand {
			return nil, fmt.Errorf("%w: %q has unknown command type %d", ErrInvalidSchema, r.Name, r.Type)
		}
		if err := freeze(root, nil); err != nil {
			return nil, err
		}

		s.roots = append(s.roots, root)
		s.byName[root.Name] = root
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid tree.
func MustSchema(roots ...*Node) *Schema {
	s, err := NewSchema(roots...)
	if err != nil {
		panic(err)
	}
	return s
}

// freeze validates n and assigns handler keys to its leaves.
func (s *Schema) freeze(n *Node, path []string) error {
	path = append(path, n.Name)
	where := strings.Join(path, " ")

	if !namePattern.MatchString(n.Name) {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidSchema, where)
	}
	if n.Description == "" {
		return fmt.Errorf("%w: %q has no description", ErrInvalidSchema, where)
	}
	if n.Restricted && n.Kind != KindCommand {
		return fmt.Errorf("%w: %q: only root commands can be restricted", ErrInvalidSchema, where)
	}
	if n.Type != 0 && len(path) > 1 {
		return fmt.Errorf("%w: %q: only root commands have a command type", ErrInvalidSchema, where)
	}
	if depth := len(path) - 1; depth > MaxDepth {
		return fmt.Errorf("%w: %q nests deeper than %d levels", ErrInvalidSchema, where, MaxDepth)
	}

	switch n.Kind {
	case KindSubcommand:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: subcommand %q has children", ErrInvalidSchema, where)
		}
	case KindSubcommandGroup:
		if len(n.Children) == 0 {
			return fmt.Errorf("%w: group %q has no subcommands", ErrInvalidSchema, where)
		}
	case KindCommand:
	default:
		return fmt.Errorf("%w: %q has unknown kind %s", ErrInvalidSchema, where, n.Kind)
	}

	if n.IsLeaf() {
		n.handlerKey = strings.Join(path, ".")
		s.leaves = append(s.leaves, n)
		return nil
	}

	if len(n.Params) > 0 {
		return fmt.Errorf("%w: %q has both children and parameters", ErrInvalidSchema, where)
	}

	seen := make(map[string]struct{}, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%w: %q has a nil child", ErrInvalidSchema, where)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %q declares %q twice", ErrInvalidSchema, where, c.Name)
		}
		seen[c.Name] = struct{}{}

		switch {
		case n.Kind == KindSubcommandGroup && c.Kind != KindSubcommand:
			return fmt.Errorf("%w: group %q contains a %s", ErrInvalidSchema, where, c.Kind)
		case c.Kind == KindCommand:
			return fmt.Errorf("%w: %q contains a nested command", ErrInvalidSchema, where)
		}

		if err := s.freeze(c, path); err != nil {
			return err
		}
	}

	return nil
}

// freezeMenu validates a context menu root, which is always a bare leaf.
func (s *Schema) freezeMenu(n *Node, _ []string) error {
	if !menuNamePattern.MatchString(n.Name) || strings.TrimSpace(n.Name) != n.Name {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidSchema, n.Name)
	}
	if n.Description != "" {
		return fmt.Errorf("%w: context menu %q cannot have a description", ErrInvalidSchema, n.Name)
	}
	if len(n.Children) > 0 || len(n.Params) > 0 {
		return fmt.Errorf("%w: context menu %q cannot have options", ErrInvalidSchema, n.Name)
	}

	n.handlerKey = n.Name
	s.leaves = append(s.leaves, n)
	return nil
}

// Root returns the root command with the given name, or nil.
func (s *Schema) Root(name string) *Node {
	return s.byName[name]
}

// Roots returns the root commands in declaration order.
func (s *Schema) Roots() []*Node {
	out := make([]*Node, len(s.roots))
	copy(out, s.roots)
	return out
}

// Leaves returns the handler keys of every leaf in declaration order.
func (s *Schema) Leaves() []string {
	keys := make([]string, len(s.leaves))
	for i, l := range s.leaves {
		keys[i] = l.handlerKey
	}
	return keys
}

// Restricted returns the names of restricted root commands.
func (s *Schema) Restricted() []string {
	var names []string
	for _, r := range s.roots {
		if r.Restricted {
			names = append(names, r.Name)
		}
	}
	return names
}

// ApplicationCommands builds the Discord command definitions for the schema.
func (s *Schema) ApplicationCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(s.roots))
	for _, r := range s.roots {
		cmd := &discordgo.ApplicationCommand{
			Type:        discordgo.ChatApplicationCommand,
			Name:        r.Name,
			Description: r.Description,
			Options:     applicationOptions(r),
		}
		if r.IsContextMenu() {
			cmd.Type = r.Type
			cmd.Options = nil
		}
		if r.Restricted {
			// Permissions are guild-scoped, so a restricted command is guild-only.
			cmd.DefaultPermission = boolPtr(false)
			cmd.DMPermission = boolPtr(false)
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func applicationOptions(n *Node) []*discordgo.ApplicationCommandOption {
	if n.IsLeaf() {
		if len(n.Params) == 0 {
			return nil
		}
		out := make([]*discordgo.ApplicationCommandOption, len(n.Params))
		for i, p := range n.Params {
			cp := *p
			out[i] = &cp
		}
		return out
	}

	out := make([]*discordgo.ApplicationCommandOption, 0, len(n.Children))
	for _, c := range n.Children {
		opt := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        c.Name,
			Description: c.Description,
			Options:     applicationOptions(c),
		}
		if c.Kind == KindSubcommandGroup {
			opt.Type = discordgo.ApplicationCommandOptionSubCommandGroup
		}
		out = append(out, opt)
	}
	return out
}

func cloneNode(n *Node) *Node {
	cp := *n
	cp.handlerKey = ""
	if n.Params != nil {
		cp.Params = make([]*discordgo.ApplicationCommandOption, len(n.Params))
		copy(cp.Params, n.Params)
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			if c != nil {
				cp.Children[i] = cloneNode(c)
			}
		}
	}
	return &cp
}

func boolPtr(b bool) *bool {
	return &b
}
