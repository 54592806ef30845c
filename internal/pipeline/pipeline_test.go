package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/tojson/internal/value"
)

func TestValueData_IntoValue(t *testing.T) {
	span := value.Span{Start: 2, End: 9}

	v := value.Int{Val: 3, Span: value.Span{Start: 0, End: 1}}
	assert.Equal(t, v, FromValue(v).IntoValue(span))

	assert.Equal(t, value.Nothing{Span: span}, FromValue(nil).IntoValue(span))

	var nilData *ValueData
	assert.Equal(t, value.Nothing{Span: span}, nilData.IntoValue(span))
}

func TestListStream_IntoValue(t *testing.T) {
	span := value.Span{Start: 0, End: 12}

	stream := NewListStream(value.Int{Val: 1})
	stream.Push(value.String{Val: "two"})
	assert.Equal(t, 2, stream.Len())

	got := stream.IntoValue(span)
	expected := value.List{
		Vals: []value.Value{value.Int{Val: 1}, value.String{Val: "two"}},
		Span: span,
	}
	assert.Equal(t, expected, got)

	// materializing does not alias the stream buffer
	got.(value.List).Vals[0] = value.Nothing{}
	assert.Equal(t, expected, stream.IntoValue(span))
}

func TestListStream_Empty(t *testing.T) {
	got := NewListStream().IntoValue(value.Span{})
	assert.Equal(t, value.List{Vals: []value.Value{}}, got)
}

func TestEmpty_IntoValue(t *testing.T) {
	span := value.Span{Start: 1, End: 2}
	assert.Equal(t, value.Nothing{Span: span}, Empty{}.IntoValue(span))
}
