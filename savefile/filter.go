package savefile

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// PartNames returns the distinct names of every part block in the document,
// sorted lexicographically. The document is not modified.
func (d *Document) PartNames() []string {
	set := make(map[string]struct{})

	var walk func(nodes []*Node)

	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Kind != KindBlock {
				continue
			}

			if n.Key == d.opts.partKey {
				if name, ok := n.Param(d.opts.nameKey); ok {
					set[name] = struct{}{}
				}
			}

			walk(n.Children)
		}
	}

	walk(d.Nodes)

	return slices.Sorted(maps.Keys(set))
}

// ScrubParts removes every part block whose name is in names, mutating the
// document in place, and returns the number of parts removed.
//
// Parts reference siblings by ordinal index among the part blocks of the
// same parent (parent and sym hold a bare index; srfN and attN hold
// "<attach>, <index>"). Surviving references are shifted down past the
// removed parts; an index of -1 passes through unchanged. A surviving part
// that references a removed part is reported as [ErrDanglingReference] and
// the document must be discarded.
//
// Names that match nothing are not an error: the document is simply left
// as-is for them. Scrubbing twice with the same names equals scrubbing once.
func (d *Document) ScrubParts(
	ctx context.Context,
	names []string,
) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	removed, err := d.scrubChildren(ctx, "document", &d.Nodes, set)

	d.opts.logger.TraceContext(ctx, "scrub complete",
		slog.Int("removed", removed),
		slog.Int("names", len(names)),
	)

	return removed, err
}

// scrubChildren removes matching parts from one child sequence, renumbers
// the survivors' references, then recurses into remaining blocks. The
// container name is reported with per-container removal counts.
func (d *Document) scrubChildren(
	ctx context.Context,
	container string,
	children *[]*Node,
	set map[string]struct{},
) (int, error) {
	deleted := make(map[int]struct{})
	kept := make([]*Node, 0, len(*children))

	partIdx := 0

	for _, c := range *children {
		if c.Kind == KindBlock && c.Key == d.opts.partKey {
			idx := partIdx
			partIdx++

			if name, ok := c.Param(d.opts.nameKey); ok {
				if _, hit := set[name]; hit {
					deleted[idx] = struct{}{}

					continue
				}
			}
		}

		kept = append(kept, c)
	}

	*children = kept
	removed := len(deleted)

	if removed > 0 {
		for _, c := range kept {
			if c.Kind != KindBlock || c.Key != d.opts.partKey {
				continue
			}

			err := d.renumberPart(c, deleted)
			if err != nil {
				return removed, err
			}
		}

		d.opts.logger.InfoContext(ctx, "removed parts",
			slog.String("vessel", container),
			slog.Int("count", removed),
		)
	}

	total := removed

	for _, c := range kept {
		if c.Kind != KindBlock {
			continue
		}

		name := c.Key
		if v, ok := c.Param(d.opts.nameKey); ok {
			name = v
		}

		n, err := d.scrubChildren(ctx, name, &c.Children, set)

		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// renumberPart shifts the sibling references of one surviving part down
// past the deleted part indexes.
func (d *Document) renumberPart(part *Node, deleted map[int]struct{}) error {
	name, _ := part.Param(d.opts.nameKey)

	for _, c := range part.Children {
		if c.Kind != KindParam {
			continue
		}

		switch c.Key {
		case "parent", "sym":
			shifted, err := shiftIndex(c.Value, deleted)
			if err != nil {
				return referenceError(err, name, c)
			}

			c.Value = shifted

		case "srfN", "attN":
			attach, idx, ok := strings.Cut(c.Value, ",")
			if !ok {
				return referenceError(ErrInvalidReference, name, c)
			}

			shifted, err := shiftIndex(idx, deleted)
			if err != nil {
				return referenceError(err, name, c)
			}

			c.Value = strings.TrimSpace(attach) + ", " + shifted
		}
	}

	return nil
}

// referenceError decorates a reference failure with the part and parameter
// it occurred in. The sentinel stays wrapped so errors.Is still matches.
func referenceError(err error, part string, c *Node) *Error {
	return NewError("cannot renumber part reference").
		Wrap(err).
		With(slog.String("part", part)).
		With(slog.String("key", c.Key)).
		With(slog.String("value", c.Value)).
		With(slog.Int("line", c.Line))
}

// shiftIndex rewrites one sibling index after removal: indexes of removed
// parts are fatal, -1 passes through, and everything else shifts down by
// the number of removed parts that preceded it.
func shiftIndex(s string, deleted map[int]struct{}) (string, error) {
	ref, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidReference
	}

	if _, gone := deleted[ref]; gone {
		return "", ErrDanglingReference
	}

	if ref == -1 {
		return strconv.Itoa(ref), nil
	}

	offset := 0

	for i := range deleted {
		if i < ref {
			offset++
		}
	}

	return strconv.Itoa(ref - offset), nil
}
