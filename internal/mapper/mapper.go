// Package mapper converts shell values into JSON trees.
package mapper

import (
	"github.com/mcncl/tojson/internal/jsontree"
	"github.com/mcncl/tojson/internal/value"
)

// Mapper is responsible for turning a value into a jsontree.Node
type Mapper struct{}

// NewMapper creates a new Mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts v into a JSON tree.
//
// The only failure is an error value anywhere in v: conversion stops there
// and the wrapped error is returned unchanged. Values with no JSON form
// (blocks and ranges) become null. Units of filesizes and durations are
// dropped.
func (m *Mapper) Map(v value.Value) (jsontree.Node, error) {
	switch v := v.(type) {
	case value.Bool:
		return jsontree.Bool(v.Val), nil
	case value.Filesize:
		return jsontree.I64(v.Val), nil
	case value.Duration:
		return jsontree.I64(v.Val), nil
	case value.Date:
		return jsontree.String(v.String()), nil
	case value.Float:
		return jsontree.F64(v.Val), nil
	case value.Int:
		return jsontree.I64(v.Val), nil
	case value.Nothing:
		return jsontree.Null{}, nil
	case value.String:
		return jsontree.String(v.Val), nil
	case value.CellPath:
		return mapCellPath(v), nil
	case value.List:
		return m.mapList(v.Vals)
	case value.Error:
		if v.Err == nil {
			return jsontree.Null{}, nil
		}
		return nil, v.Err
	case value.Block, value.Range:
		return jsontree.Null{}, nil
	case value.Binary:
		out := make(jsontree.Array, len(v.Val))
		for i, b := range v.Val {
			out[i] = jsontree.U64(b)
		}
		return out, nil
	case value.Record:
		return m.mapRecord(v)
	case value.Custom:
		if v.Val == nil {
			return jsontree.Null{}, nil
		}
		if n := v.Val.ToJSON(); n != nil {
			return n, nil
		}
		return jsontree.Null{}, nil
	default:
		// nil interface
		return jsontree.Null{}, nil
	}
}

// Index members are emitted unsigned.
func mapCellPath(path value.CellPath) jsontree.Array {
	out := make(jsontree.Array, len(path.Members))
	for i, member := range path.Members {
		if member.IsIndex {
			out[i] = jsontree.U64(uint64(member.Index))
		} else {
			out[i] = jsontree.String(member.Name)
		}
	}
	return out
}

func (m *Mapper) mapList(vals []value.Value) (jsontree.Node, error) {
	out := make(jsontree.Array, 0, len(vals))
	for _, v := range vals {
		n, err := m.Map(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *Mapper) mapRecord(rec value.Record) (jsontree.Node, error) {
	obj := jsontree.NewObject(len(rec.Cols))
	for i, col := range rec.Cols {
		if i >= len(rec.Vals) {
			break
		}
		n, err := m.Map(rec.Vals[i])
		if err != nil {
			return nil, err
		}
		obj.Set(col, n)
	}
	return obj, nil
}
