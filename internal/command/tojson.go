// Package command implements the "to json" pipeline command.
package command

import (
	"go.uber.org/zap"

	"github.com/mcncl/tojson/internal/errors"
	"github.com/mcncl/tojson/internal/formatter"
	"github.com/mcncl/tojson/internal/jsontree"
	"github.com/mcncl/tojson/internal/mapper"
	"github.com/mcncl/tojson/internal/pipeline"
	"github.com/mcncl/tojson/internal/value"
)

// Call describes one invocation of the command.
type Call struct {
	// Head locates the command name in the source.
	Head value.Span
	// Raw selects compact output.
	Raw bool
	// Indent is the number of spaces per level; zero means the default.
	Indent int
}

// Example documents one use of the command.
type Example struct {
	Description string
	Example     string
	Result      value.Value
}

// ToJSON converts its input value into JSON text.
type ToJSON struct {
	logger *zap.Logger
	mapper *mapper.Mapper
	render func(*formatter.Formatter, jsontree.Node) (string, error)
}

// NewToJSON creates the command. A nil logger disables logging.
func NewToJSON(logger *zap.Logger) *ToJSON {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToJSON{
		logger: logger,
		mapper: mapper.NewMapper(),
		render: (*formatter.Formatter).Format,
	}
}

// Name returns the name users invoke the command by.
func (c *ToJSON) Name() string {
	return "to json"
}

// Usage returns a one-line description.
func (c *ToJSON) Usage() string {
	return "Converts table data into JSON text."
}

// Examples returns the documented examples.
func (c *ToJSON) Examples() []Example {
	return []Example{
		{
			Description: "Outputs an unformatted JSON string representing the contents of this table",
			Example:     "[1 2 3] | to json",
			Result:      value.String{Val: "[\n  1,\n  2,\n  3\n]"},
		},
	}
}

// Run materializes input, converts it and wraps the text as a string value
// at call.Head.
//
// An error value inside the input is returned as the error, unchanged. If
// the tree cannot be rendered, the result is an error value reporting the
// input type, and the returned error is nil.
func (c *ToJSON) Run(call Call, input pipeline.Data) (pipeline.Data, error) {
	span := call.Head
	v := input.IntoValue(span)

	tree, err := c.mapper.Map(v)
	if err != nil {
		c.logger.Debug("input contains an error value", zap.Error(err))
		return nil, err
	}

	f := formatter.NewFormatter()
	if call.Indent > 0 {
		f.Indent = call.Indent
	}
	f.Raw = call.Raw

	text, err := c.render(f, tree)
	if err != nil {
		c.logger.Debug("failed to render JSON",
			zap.String("type", v.Type()),
			zap.Error(err),
		)
		return pipeline.FromValue(value.Error{
			Err: errors.CantConvert("JSON", v.Type(), span),
		}), nil
	}

	c.logger.Debug("converted value to JSON",
		zap.String("type", v.Type()),
		zap.Int("bytes", len(text)),
	)
	return pipeline.FromValue(value.String{Val: text, Span: span}), nil
}
