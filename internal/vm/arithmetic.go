package vm

import (
	"math"
	"strconv"
)

// numDomain places a numeric value in the promotion lattice
// integer < big_integer < float.
type numDomain int

const (
	domInt numDomain = iota
	domBig
	domFloat
)

func numericDomain(v Value) (numDomain, bool) {
	switch v.Tag {
	case TagInt:
		return domInt, true
	case TagBigInt:
		return domBig, true
	case TagFloat:
		return domFloat, true
	default:
		return 0, false
	}
}

func numToFloat(v Value, d numDomain) float64 {
	switch d {
	case domInt:
		return float64(v.I)
	case domBig:
		return v.Big.Float64()
	default:
		return v.F
	}
}

func numToBig(v Value, d numDomain) Int128 {
	switch d {
	case domInt:
		return Int128FromInt64(v.I)
	case domBig:
		return v.Big
	default:
		return Int128FromInt64(int64(v.F))
	}
}

func isZeroNumeric(v Value, d numDomain) bool {
	switch d {
	case domInt:
		return v.I == 0
	case domBig:
		return v.Big.IsZero()
	default:
		return v.F == 0.0
	}
}

func narrowBig(b Int128) Value {
	if b.FitsInt64() {
		return IntValue(b.Int64())
	}
	return BigIntValue(b)
}

// combineNumeric implements the ADD/SUB/MUL/DIV/MOD promotion lattice: float absorbs
// everything, big_integer absorbs integer (and stays big_integer
// regardless of whether the result would fit in 64 bits), integer+integer
// is computed at 128-bit precision and narrows back to integer only when
// it fits.
func combineNumeric(a Value, da numDomain, b Value, db numDomain, op func(x, y Int128) Int128, floatOp func(x, y float64) float64) Value {
	if da == domFloat || db == domFloat {
		return FloatValue(floatOp(numToFloat(a, da), numToFloat(b, db)))
	}
	result := op(numToBig(a, da), numToBig(b, db))
	if da == domBig || db == domBig {
		return BigIntValue(result)
	}
	return narrowBig(result)
}

func isConcatEligible(v Value) bool {
	switch v.Tag {
	case TagString, TagInt, TagBigInt, TagFloat, TagBool:
		return true
	default:
		return false
	}
}

// Add implements ADD: numeric promotion per the lattice above, with string
// concatenation when either operand is a string and the other is a
// concat-eligible scalar.
func Add(a, b Value, stats *AllocStats) (Value, error) {
	da, oka := numericDomain(a)
	db, okb := numericDomain(b)
	if oka && okb {
		return combineNumeric(a, da, b, db,
			func(x, y Int128) Int128 { return x.Add(y) },
			func(x, y float64) float64 { return x + y },
		), nil
	}
	if a.Tag == TagString || b.Tag == TagString {
		if !isConcatEligible(a) || !isConcatEligible(b) {
			return Value{}, newError(ErrInvalidCast, "ADD: cannot concatenate %s with %s", a.Tag, b.Tag)
		}
		return NewString([]byte(Render(a)+Render(b)), stats), nil
	}
	return Value{}, newError(ErrInvalidCast, "ADD: incompatible operand types %s and %s", a.Tag, b.Tag)
}

// Sub implements SUB: same numeric promotion as Add, without string
// concatenation.
func Sub(a, b Value) (Value, error) {
	da, oka := numericDomain(a)
	db, okb := numericDomain(b)
	if !oka || !okb {
		return Value{}, newError(ErrInvalidCast, "SUB: incompatible operand types %s and %s", a.Tag, b.Tag)
	}
	return combineNumeric(a, da, b, db,
		func(x, y Int128) Int128 { return x.Sub(y) },
		func(x, y float64) float64 { return x - y },
	), nil
}

// Mul implements MUL: same numeric promotion as Add, without string
// concatenation.
func Mul(a, b Value) (Value, error) {
	da, oka := numericDomain(a)
	db, okb := numericDomain(b)
	if !oka || !okb {
		return Value{}, newError(ErrInvalidCast, "MUL: incompatible operand types %s and %s", a.Tag, b.Tag)
	}
	return combineNumeric(a, da, b, db,
		func(x, y Int128) Int128 { return x.Mul(y) },
		func(x, y float64) float64 { return x * y },
	), nil
}

// Div implements DIV: C-style truncating division for integer domains,
// ordinary division for float, DivisionByZero for any zero divisor
// (including float 0.0, which never produces IEEE infinity here).
func Div(a, b Value) (Value, error) {
	da, oka := numericDomain(a)
	db, okb := numericDomain(b)
	if !oka || !okb {
		return Value{}, newError(ErrInvalidCast, "DIV: incompatible operand types %s and %s", a.Tag, b.Tag)
	}
	if isZeroNumeric(b, db) {
		return Value{}, newError(ErrDivisionByZero, "DIV by zero")
	}
	return combineNumeric(a, da, b, db,
		func(x, y Int128) Int128 { return x.QuoTrunc(y) },
		func(x, y float64) float64 { return x / y },
	), nil
}

// Mod implements MOD: C-style truncating remainder (sign of the dividend)
// for integer domains, math.Mod-equivalent for float, DivisionByZero for
// any zero divisor.
func Mod(a, b Value) (Value, error) {
	da, oka := numericDomain(a)
	db, okb := numericDomain(b)
	if !oka || !okb {
		return Value{}, newError(ErrInvalidCast, "MOD: incompatible operand types %s and %s", a.Tag, b.Tag)
	}
	if isZeroNumeric(b, db) {
		return Value{}, newError(ErrDivisionByZero, "MOD by zero")
	}
	return combineNumeric(a, da, b, db,
		func(x, y Int128) Int128 { return x.RemTrunc(y) },
		floatMod,
	), nil
}

// floatMod computes a truncating remainder (sign of the dividend), the same
// convention as the integer domains and as math.Mod.
func floatMod(x, y float64) float64 {
	return x - math.Trunc(x/y)*y
}

// ToInt implements CAST_INT's coercion: integer stays itself, a big_integer
// outside signed-64 range stays a big_integer, a big_integer within range
// narrows to integer, float truncates toward zero, string parses as a
// decimal integer, boolean maps to 0/1. Any other source is InvalidCast.
func ToInt(v Value) (Value, error) {
	switch v.Tag {
	case TagInt:
		return v, nil
	case TagBigInt:
		if v.Big.FitsInt64() {
			return IntValue(v.Big.Int64()), nil
		}
		return v, nil
	case TagFloat:
		return IntValue(int64(v.F)), nil
	case TagString:
		if v.Str == nil {
			return Value{}, newError(ErrInvalidCast, "CAST_INT: cannot parse empty string")
		}
		n, err := strconv.ParseInt(string(v.Str.Bytes), 10, 64)
		if err != nil {
			return Value{}, newError(ErrInvalidCast, "CAST_INT: %q is not a valid integer", string(v.Str.Bytes))
		}
		return IntValue(n), nil
	case TagBool:
		if v.Bl {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	default:
		return Value{}, newError(ErrInvalidCast, "CAST_INT: cannot cast %s to integer", v.Tag)
	}
}

// ToFloat implements CAST_FLOAT's coercion.
func ToFloat(v Value) (Value, error) {
	switch v.Tag {
	case TagInt:
		return FloatValue(float64(v.I)), nil
	case TagBigInt:
		return FloatValue(v.Big.Float64()), nil
	case TagFloat:
		return v, nil
	case TagString:
		if v.Str == nil {
			return Value{}, newError(ErrInvalidCast, "CAST_FLOAT: cannot parse empty string")
		}
		f, err := strconv.ParseFloat(string(v.Str.Bytes), 64)
		if err != nil {
			return Value{}, newError(ErrInvalidCast, "CAST_FLOAT: %q is not a valid float", string(v.Str.Bytes))
		}
		return FloatValue(f), nil
	case TagBool:
		if v.Bl {
			return FloatValue(1.0), nil
		}
		return FloatValue(0.0), nil
	default:
		return Value{}, newError(ErrInvalidCast, "CAST_FLOAT: cannot cast %s to float", v.Tag)
	}
}

// toArraySize coerces a popped value to a non-negative Go slice length for
// ARRAY_NEW, via the same rules as CAST_INT.
func toArraySize(v Value) (int, error) {
	coerced, err := ToInt(v)
	if err != nil {
		return 0, err
	}
	if coerced.Tag != TagInt {
		return 0, newError(ErrInvalidCast, "ARRAY_NEW: size %s does not fit a machine-representable length", coerced.Tag)
	}
	if coerced.I < 0 {
		return 0, newError(ErrInvalidCast, "ARRAY_NEW: negative size %d", coerced.I)
	}
	return int(coerced.I), nil
}
