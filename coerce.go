package starlake

import "math"

// Field readers for records decoded from JSON. They reproduce schema-on-read
// coercion: a missing field, a JSON null, or a value of the wrong type
// yields nil rather than an error. The caller picks the column type, the
// data either fits it or becomes a null.

// StringField reads a string valued field from a record.
func StringField(rec map[string]interface{}, field string) *string {
	if v, ok := rec[field].(string); ok {
		return &v
	}
	return nil
}

// FloatField reads a numeric field from a record.
func FloatField(rec map[string]interface{}, field string) *float64 {
	if v, ok := rec[field].(float64); ok {
		return &v
	}
	return nil
}

// IntField reads an integer field from a record. JSON numbers decode as
// float64, so only integral values in int32 range coerce.
func IntField(rec map[string]interface{}, field string) *int32 {
	v, ok := rec[field].(float64)
	if !ok || v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return nil
	}
	i := int32(v)
	return &i
}

// LongField reads a 64 bit integer field from a record.
func LongField(rec map[string]interface{}, field string) *int64 {
	v, ok := rec[field].(float64)
	if !ok || v != math.Trunc(v) {
		return nil
	}
	i := int64(v)
	return &i
}
