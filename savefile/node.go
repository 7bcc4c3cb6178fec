package savefile

import (
	"github.com/ardnew/partclean/log"
)

// Kind discriminates the node variants of a parsed save file.
type Kind int

const (
	// KindBlock is a named, brace-delimited group of child nodes.
	KindBlock Kind = iota

	// KindParam is a "key = value" leaf.
	KindParam

	// KindBlank is an empty line, preserved for lossless round-trips.
	KindBlank

	// KindRaw is an unrecognized line, preserved verbatim.
	KindRaw
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindParam:
		return "param"
	case KindBlank:
		return "blank"
	default:
		return "raw"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds render as their
// names in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node represents one block, parameter, or preserved line in a save file.
//
// A node is either a block (Children, no Value) or a leaf (Value, no
// Children). The order of Children is significant and is preserved on
// output. Raw nodes carry the original line text in Value.
type Node struct {
	Key      string  `json:"key,omitempty"      yaml:"key,omitempty"`
	Value    string  `json:"value,omitempty"    yaml:"value,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
	Kind     Kind    `json:"kind"               yaml:"kind"`
	Line     int     `json:"-"                  yaml:"-"`
}

// NewBlock creates a block node with the given key and children.
func NewBlock(key string, children ...*Node) *Node {
	return &Node{Key: key, Children: children, Kind: KindBlock}
}

// NewParam creates a parameter leaf node.
func NewParam(key, value string) *Node {
	return &Node{Key: key, Value: value, Kind: KindParam}
}

// ChildrenWithKey returns the receiver's direct child blocks with the given
// key.
func (n *Node) ChildrenWithKey(key string) []*Node {
	var nodes []*Node

	for _, c := range n.Children {
		if c.Kind == KindBlock && c.Key == key {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

// Param returns the value of the first parameter child with the given key.
// Blocks commonly carry multiple parameters with the same key; only the
// first is reported.
func (n *Node) Param(key string) (string, bool) {
	for _, c := range n.Children {
		if c.Kind == KindParam && c.Key == key {
			return c.Value, true
		}
	}

	return "", false
}

// SetParam replaces the value of the first parameter child with the given
// key, or appends a new parameter if none exists.
func (n *Node) SetParam(key, value string) {
	for _, c := range n.Children {
		if c.Kind == KindParam && c.Key == key {
			c.Value = value

			return
		}
	}

	n.Children = append(n.Children, NewParam(key, value))
}

// Document is the root of a parsed save file: the ordered sequence of
// top-level nodes plus the options the document was parsed with.
//
// A Document is built once by the parser, optionally mutated in place by
// [Document.ScrubParts], and consumed by the serializer. Nodes are never
// shared between parents; ownership is a strict tree.
type Document struct {
	Nodes []*Node

	opts options
}

// DefaultPartKey is the block key identifying vessel part records.
const DefaultPartKey = "PART"

// DefaultNameKey is the parameter key identifying a part's name.
const DefaultNameKey = "name"

// DefaultIndent is the indentation per nesting level used by the game's own
// serializer.
const DefaultIndent = "\t"

// options holds Document configuration.
type options struct {
	partKey string
	nameKey string
	indent  string
	logger  log.Logger
}

// Option configures parsing, filtering, or serialization behavior.
type Option func(*Document)

// WithPartKey sets the block key identifying part records.
func WithPartKey(key string) Option {
	return func(d *Document) {
		d.opts.partKey = key
	}
}

// WithNameKey sets the parameter key identifying a part's name.
func WithNameKey(key string) Option {
	return func(d *Document) {
		d.opts.nameKey = key
	}
}

// WithIndent sets the indentation string emitted per nesting level.
func WithIndent(indent string) Option {
	return func(d *Document) {
		d.opts.indent = indent
	}
}

// WithLogger sets the structured logger for trace-level debugging and
// removal reports. If not provided, the logger is zero-valued and all
// logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(d *Document) {
		d.opts.logger = logger
	}
}

// NewDocument creates an empty Document with defaults and options applied.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		opts: options{
			partKey: DefaultPartKey,
			nameKey: DefaultNameKey,
			indent:  DefaultIndent,
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}
