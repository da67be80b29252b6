package ir

import (
	"time"

	"github.com/roach88/strata/schema"
)

// Value is a sealed interface over literal values. Only IntValue,
// LongValue, FloatValue, StringValue, BoolValue and DateValue implement
// it. Every value carries its semantic type.
type Value interface {
	valueNode() // Sealed - only types in this package implement it
	ValueType() schema.Type
}

// IntValue is an integer literal.
type IntValue int64

func (IntValue) valueNode()             {}
func (IntValue) ValueType() schema.Type { return schema.TypeInteger }

// LongValue is a long literal.
type LongValue int64

func (LongValue) valueNode()             {}
func (LongValue) ValueType() schema.Type { return schema.TypeLong }

// FloatValue is a double literal.
type FloatValue float64

func (FloatValue) valueNode()             {}
func (FloatValue) ValueType() schema.Type { return schema.TypeDouble }

// StringValue is a string literal.
type StringValue string

func (StringValue) valueNode()             {}
func (StringValue) ValueType() schema.Type { return schema.TypeString }

// BoolValue is a boolean literal.
type BoolValue bool

func (BoolValue) valueNode()             {}
func (BoolValue) ValueType() schema.Type { return schema.TypeBoolean }

// DateValue is a date literal with day precision.
type DateValue struct {
	Year  int
	Month time.Month
	Day   int
}

func (DateValue) valueNode()             {}
func (DateValue) ValueType() schema.Type { return schema.TypeDate }
