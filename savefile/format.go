package savefile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the document in native save-file syntax to the writer.
//
// Serializing an unmodified document reproduces output structurally
// identical to its input: block and parameter content, child order, blank
// lines, and unrecognized lines are all preserved. Indentation is normalized
// to the document's indent string (tab by default, per the game's own
// serializer).
func (d *Document) Format(_ context.Context, w io.Writer) error {
	for _, n := range d.Nodes {
		err := formatNode(n, w, d.opts.indent, 0)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the node tree as JSON to the writer.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(d.Nodes, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(d.Nodes)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the node tree as YAML to the writer.
func (d *Document) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d.Nodes, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatTree writes an indented structural dump of the node tree to the
// writer, for inspection rather than round-tripping.
func (d *Document) FormatTree(_ context.Context, w io.Writer) error {
	for _, n := range d.Nodes {
		err := treeNode(n, w, 0)
		if err != nil {
			return err
		}
	}

	return nil
}

// formatNode renders one node and its descendants in native syntax.
func formatNode(n *Node, w io.Writer, indent string, depth int) error {
	prefix := strings.Repeat(indent, depth)

	switch n.Kind {
	case KindBlank:
		_, err := fmt.Fprintln(w)

		return err

	case KindRaw:
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, n.Value)

		return err

	case KindParam:
		_, err := fmt.Fprintf(w, "%s%s = %s\n", prefix, n.Key, n.Value)

		return err

	case KindBlock:
		_, err := fmt.Fprintf(w, "%s%s\n%s{\n", prefix, n.Key, prefix)
		if err != nil {
			return err
		}

		for _, c := range n.Children {
			err = formatNode(c, w, indent, depth+1)
			if err != nil {
				return err
			}
		}

		_, err = fmt.Fprintf(w, "%s}\n", prefix)

		return err

	default:
		return nil
	}
}

// treeNode renders one node of the structural dump.
func treeNode(n *Node, w io.Writer, depth int) error {
	prefix := strings.Repeat("  ", depth)

	switch n.Kind {
	case KindBlank:
		return nil

	case KindRaw:
		_, err := fmt.Fprintf(w, "%sraw: %s\n", prefix, n.Value)

		return err

	case KindParam:
		_, err := fmt.Fprintf(w, "%s%s = %s\n", prefix, n.Key, n.Value)

		return err

	case KindBlock:
		_, err := fmt.Fprintf(w, "%s%s:\n", prefix, n.Key)
		if err != nil {
			return err
		}

		for _, c := range n.Children {
			err = treeNode(c, w, depth+1)
			if err != nil {
				return err
			}
		}

		return nil

	default:
		return nil
	}
}
