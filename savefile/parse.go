package savefile

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ParseReader parses a Document from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a Document from a string.
//
// The format is line oriented. A bare key line followed by a "{" line opens
// a block; "}" closes the innermost open block; "key = value" appends a
// parameter to it (whitespace around the first "=" is insignificant). Blank
// lines and lines matching none of these are preserved verbatim so the
// document round-trips losslessly.
//
// A "}" with no open block, or an open block left unclosed at end of input,
// is reported as [ErrUnbalancedBrace] with the offending line number.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	doc := NewDocument(opts...)

	p := &parser{doc: doc}

	lines := strings.Split(s, "\n")

	// A trailing newline yields one empty trailing element from Split.
	// It is an artifact of line termination, not a blank line of content.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		err := p.parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
	}

	err := p.finish(len(lines))
	if err != nil {
		return nil, err
	}

	doc.opts.logger.TraceContext(ctx, "parse complete",
		slog.Int("lines", len(lines)),
		slog.Int("roots", len(doc.Nodes)),
	)

	return doc, nil
}

// parser holds the line parser state.
type parser struct {
	doc   *Document
	stack []*Node

	// pending holds a bare key line awaiting its opening brace.
	pending     string
	pendingLine int
	hasPending  bool
}

// parseLine consumes one line of input.
func (p *parser) parseLine(num int, line string) error {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		p.flushPending()
		p.append(&Node{Kind: KindBlank, Line: num})

	case trimmed == "{":
		if !p.hasPending {
			// An opening brace with no preceding key. Preserve it; the
			// matching closer (if any) will fail the balance check.
			p.append(&Node{Kind: KindRaw, Value: trimmed, Line: num})

			return nil
		}

		block := &Node{Kind: KindBlock, Key: p.pending, Line: p.pendingLine}
		p.hasPending = false

		p.append(block)
		p.stack = append(p.stack, block)

	case trimmed == "}":
		p.flushPending()

		if len(p.stack) == 0 {
			return ErrUnbalancedBrace.
				With(slog.Int("line", num)).
				With(slog.String("found", "}"))
		}

		p.stack = p.stack[:len(p.stack)-1]

	case strings.Contains(trimmed, "="):
		p.flushPending()

		key, value, _ := strings.Cut(trimmed, "=")
		p.append(&Node{
			Kind:  KindParam,
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
			Line:  num,
		})

	default:
		p.flushPending()

		p.pending = trimmed
		p.pendingLine = num
		p.hasPending = true
	}

	return nil
}

// finish flushes any trailing state and verifies brace balance.
func (p *parser) finish(lastLine int) error {
	p.flushPending()

	if len(p.stack) > 0 {
		open := p.stack[len(p.stack)-1]

		return ErrUnbalancedBrace.
			With(slog.String("block", open.Key)).
			With(slog.Int("line", open.Line)).
			With(slog.Int("eof", lastLine))
	}

	return nil
}

// flushPending demotes a held bare key line to a raw node. It is called
// whenever the next line proves the key does not open a block.
func (p *parser) flushPending() {
	if !p.hasPending {
		return
	}

	p.append(&Node{Kind: KindRaw, Value: p.pending, Line: p.pendingLine})
	p.hasPending = false
}

// append attaches a node to the innermost open block, or to the document
// root when no block is open.
func (p *parser) append(n *Node) {
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.Children = append(top.Children, n)

		return
	}

	p.doc.Nodes = append(p.doc.Nodes, n)
}
