package trend

import (
	"fmt"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a sample reading: a number, a boolean or absent (null).
// The zero Value is null.
type Value struct {
	kind ValueKind
	num  float64
	flag bool
}

// Null is the absent reading.
var Null = Value{}

// Number wraps an analog reading.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Boolean wraps a digital reading.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, flag: b}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Float returns the reading as a number. Booleans map to 0/1.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBoolean:
		if v.flag {
			return 1
		}
		return 0
	case KindNull:
		return 0
	}
	return 0
}

// Bool returns the reading as a boolean. Numbers are true when non-zero.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBoolean:
		return v.flag
	case KindNumber:
		return v.num != 0
	case KindNull:
		return false
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindNull:
		return "null"
	}
	return "?"
}

// Sample is one timestamped reading. Time is an opaque, caller ordered label.
type Sample struct {
	Time  string
	Value Value
}

// Record is one entry of a bulk import source.
type Record = Sample

// Records is an ordered channel -> samples mapping, as produced by a feed decoder.
// Channel order is the order in which names were first appended.
type Records struct {
	order  []string
	byName map[string][]Record
}

// NewRecords creates an empty record set.
func NewRecords() *Records {
	return &Records{byName: make(map[string][]Record)}
}

// Append adds records to the named channel, creating it if needed.
func (r *Records) Append(name string, recs ...Record) {
	if r.byName == nil {
		r.byName = make(map[string][]Record)
	}
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = append(r.byName[name], recs...)
}

// Names returns channel names in first-seen order.
func (r *Records) Names() []string {
	return append([]string(nil), r.order...)
}

// Get returns the records of a channel.
func (r *Records) Get(name string) []Record {
	return r.byName[name]
}

// Len returns the number of channels.
func (r *Records) Len() int {
	return len(r.order)
}
