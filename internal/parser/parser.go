package parser

import (
	"bytes"
	"encoding/base64"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/tojson/internal/errors" // Custom errors package
	"github.com/mcncl/tojson/internal/pipeline"
	"github.com/mcncl/tojson/internal/value"
)

// Tags for value kinds that YAML has no core type for.
const (
	TagDuration = "!duration"
	TagFilesize = "!filesize"
	TagCellPath = "!cellpath"
	TagBlock    = "!block"
	TagRange    = "!range"
	TagError    = "!error"
)

const (
	maxDepth = 1000
	// maxNodes bounds the values built per input, counting every alias
	// expansion.
	maxNodes = 1_000_000
)

// Parse reads value documents from reader. A single document becomes one
// value; several documents become a stream with one value per document.
func Parse(reader io.Reader) (pipeline.Data, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	b := &builder{lineStarts: lineStarts(src)}
	decoder := yaml.NewDecoder(bytes.NewReader(src))

	var vals []value.Value
	for {
		var doc yaml.Node
		if err := decoder.Decode(&doc); err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, errors.NewParsingError("failed to decode value document", err)
		}
		v, err := b.build(&doc, 0)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}

	switch len(vals) {
	case 0:
		return nil, errors.NewParsingError("input contains no documents", errors.ErrEmptyInput)
	case 1:
		return pipeline.FromValue(vals[0]), nil
	default:
		return pipeline.NewListStream(vals...), nil
	}
}

// ParseString parses value documents from a string
func ParseString(src string) (pipeline.Data, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(src))
}

// ParseFile parses value documents from a file path
func ParseFile(filePath string) (pipeline.Data, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

type builder struct {
	lineStarts []int
	nodes      int
}

// lineStarts returns the byte offset of the first byte of every line.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// span converts the 1-based line and column of n into byte offsets.
func (b *builder) span(n *yaml.Node) value.Span {
	if n.Line < 1 || n.Line > len(b.lineStarts) {
		return value.Span{}
	}
	start := b.lineStarts[n.Line-1] + n.Column - 1
	end := start
	if n.Kind == yaml.ScalarNode {
		end += len(n.Value)
	}
	return value.Span{Start: start, End: end}
}

func (b *builder) fail(n *yaml.Node, sentinel error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.NewParsingError(fmt.Sprintf("line %d, column %d: %s", n.Line, n.Column, msg), sentinel)
}

func (b *builder) build(n *yaml.Node, depth int) (value.Value, error) {
	if depth > maxDepth {
		return nil, b.fail(n, errors.ErrInvalidLiteral, "value nesting exceeds %d levels", maxDepth)
	}
	b.nodes++
	if b.nodes > maxNodes {
		return nil, b.fail(n, errors.ErrInvalidLiteral, "input expands to more than %d values", maxNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Nothing{Span: b.span(n)}, nil
		}
		return b.build(n.Content[0], depth+1)
	case yaml.AliasNode:
		return b.build(n.Alias, depth+1)
	case yaml.SequenceNode:
		vals := make([]value.Value, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := b.build(child, depth+1)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return value.List{Vals: vals, Span: b.span(n)}, nil
	case yaml.MappingNode:
		return b.buildRecord(n, depth)
	case yaml.ScalarNode:
		return b.buildScalar(n)
	default:
		return nil, b.fail(n, errors.ErrInvalidLiteral, "unsupported node kind %d", n.Kind)
	}
}

// Key order and repeated keys are kept as written.
func (b *builder) buildRecord(n *yaml.Node, depth int) (value.Value, error) {
	cols := make([]string, 0, len(n.Content)/2)
	vals := make([]value.Value, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, b.fail(key, errors.ErrInvalidLiteral, "record keys must be scalars")
		}
		v, err := b.build(n.Content[i+1], depth+1)
		if err != nil {
			return nil, err
		}
		cols = append(cols, key.Value)
		vals = append(vals, v)
	}
	return value.NewRecord(cols, vals, b.span(n))
}

func (b *builder) buildScalar(n *yaml.Node) (value.Value, error) {
	span := b.span(n)

	switch tag := n.ShortTag(); tag {
	case "!!null":
		return value.Nothing{Span: span}, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid bool %q", n.Value)
		}
		return value.Bool{Val: v, Span: span}, nil
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid int %q", n.Value)
		}
		return value.Int{Val: v, Span: span}, nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid float %q", n.Value)
		}
		return value.Float{Val: v, Span: span}, nil
	case "!!str":
		return value.String{Val: n.Value, Span: span}, nil
	case "!!timestamp":
		var v time.Time
		if err := n.Decode(&v); err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid date %q", n.Value)
		}
		return value.Date{Val: v, Span: span}, nil
	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(stripSpace(n.Value))
		if err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid base64 binary")
		}
		return value.Binary{Val: data, Span: span}, nil
	case TagDuration:
		d, err := time.ParseDuration(strings.TrimSpace(n.Value))
		if err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid duration %q", n.Value)
		}
		return value.NewDuration(d, span), nil
	case TagFilesize:
		size, err := humanize.ParseBytes(n.Value)
		if err != nil || size > math.MaxInt64 {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid filesize %q", n.Value)
		}
		return value.Filesize{Val: int64(size), Span: span}, nil
	case TagCellPath:
		return b.buildCellPath(n, span), nil
	case TagBlock:
		id, err := strconv.Atoi(strings.TrimSpace(n.Value))
		if err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid block id %q", n.Value)
		}
		return value.Block{ID: id, Span: span}, nil
	case TagRange:
		return b.buildRange(n, span)
	case TagError:
		return value.Error{Err: errors.NewShellError(n.Value, "", span)}, nil
	default:
		return nil, b.fail(n, errors.ErrUnknownTag, "unknown tag %s (known: %s)", tag, strings.Join(knownTags(), ", "))
	}
}

// buildCellPath splits on dots. Members made only of digits select by index.
func (b *builder) buildCellPath(n *yaml.Node, span value.Span) value.CellPath {
	text := strings.TrimSpace(n.Value)
	if text == "" {
		return value.CellPath{Members: []value.PathMember{}, Span: span}
	}

	parts := strings.Split(text, ".")
	members := make([]value.PathMember, len(parts))
	offset := span.Start
	for i, part := range parts {
		memberSpan := value.Span{Start: offset, End: offset + len(part)}
		if idx, err := strconv.Atoi(part); err == nil && idx >= 0 && !strings.HasPrefix(part, "+") {
			members[i] = value.IntMember(idx, memberSpan)
		} else {
			members[i] = value.StringMember(part, memberSpan)
		}
		offset += len(part) + 1
	}
	return value.CellPath{Members: members, Span: span}
}

// buildRange accepts from..to and from..next..to.
func (b *builder) buildRange(n *yaml.Node, span value.Span) (value.Value, error) {
	parts := strings.Split(strings.TrimSpace(n.Value), "..")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid range %q", n.Value)
	}

	bounds := make([]int64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, b.fail(n, errors.ErrInvalidLiteral, "invalid range bound %q", part)
		}
		bounds[i] = v
	}

	from, to := bounds[0], bounds[len(bounds)-1]
	step := int64(1)
	if from > to {
		step = -1
	}
	if len(bounds) == 3 {
		step = bounds[1] - from
	}
	if step == 0 {
		return nil, b.fail(n, errors.ErrInvalidLiteral, "range %q has a zero step", n.Value)
	}

	return value.Range{
		From:      value.Int{Val: from, Span: span},
		Increment: value.Int{Val: step, Span: span},
		To:        value.Int{Val: to, Span: span},
		Span:      span,
	}, nil
}

func knownTags() []string {
	tags := []string{TagDuration, TagFilesize, TagCellPath, TagBlock, TagRange, TagError}
	sort.Strings(tags)
	return tags
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
