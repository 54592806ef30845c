package formatter

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/tojson/internal/errors"
	"github.com/mcncl/tojson/internal/jsontree"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Formatter is responsible for rendering JSON trees as text
type Formatter struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Raw disables all whitespace.
	Raw bool

	api     jsoniter.API
	apiStep int
}

// NewFormatter creates a new Formatter producing pretty output
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// NewRawFormatter creates a new Formatter producing compact output
func NewRawFormatter() *Formatter {
	return &Formatter{Raw: true}
}

// Format renders node as JSON text. Non-finite floats are written as null
// and invalid UTF-8 in strings and keys is replaced with U+FFFD.
func (f *Formatter) Format(node jsontree.Node) (string, error) {
	if f.Indent < 0 {
		return "", errors.NewFormatError(fmt.Sprintf("invalid indent %d", f.Indent), errors.ErrInvalidIndent)
	}

	api := f.config()
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	if err := writeNode(stream, node); err != nil {
		return "", errors.NewFormatError("failed to render JSON", err)
	}
	if stream.Error != nil {
		return "", errors.NewFormatError("failed to render JSON", stream.Error)
	}
	return string(stream.Buffer()), nil
}

func (f *Formatter) config() jsoniter.API {
	step := f.Indent
	if f.Raw {
		step = 0
	}
	if f.api == nil || f.apiStep != step {
		f.api = jsoniter.Config{IndentionStep: step}.Froze()
		f.apiStep = step
	}
	return f.api
}

func writeNode(stream *jsoniter.Stream, node jsontree.Node) error {
	switch n := node.(type) {
	case nil, jsontree.Null:
		stream.WriteNil()
	case jsontree.Bool:
		stream.WriteBool(bool(n))
	case jsontree.I64:
		stream.WriteInt64(int64(n))
	case jsontree.U64:
		stream.WriteUint64(uint64(n))
	case jsontree.F64:
		v := float64(n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			stream.WriteNil()
			return nil
		}
		stream.WriteFloat64(v)
	case jsontree.String:
		stream.WriteString(validUTF8(string(n)))
	case jsontree.Array:
		if len(n) == 0 {
			stream.WriteEmptyArray()
			return nil
		}
		stream.WriteArrayStart()
		for i, elem := range n {
			if i > 0 {
				stream.WriteMore()
			}
			if err := writeNode(stream, elem); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	case *jsontree.Object:
		if n == nil || n.Len() == 0 {
			stream.WriteEmptyObject()
			return nil
		}
		stream.WriteObjectStart()
		for i, key := range n.Keys() {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(validUTF8(key))
			elem, _ := n.Get(key)
			if err := writeNode(stream, elem); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	default:
		return fmt.Errorf("unsupported JSON node %T", node)
	}
	return nil
}

func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}
