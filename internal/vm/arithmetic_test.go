package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPromotionLattice(t *testing.T) {
	var stats AllocStats

	t.Run("integer + integer stays integer", func(t *testing.T) {
		result, err := Add(IntValue(2), IntValue(3), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagInt, result.Tag)
		assert.Equal(t, int64(5), result.I)
	})

	t.Run("integer overflow widens to big_integer", func(t *testing.T) {
		result, err := Add(IntValue(maxInt64), IntValue(1), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagBigInt, result.Tag)
		assert.Equal(t, "9223372036854775808", result.Big.String())
	})

	t.Run("big_integer + integer stays big_integer even if it fits", func(t *testing.T) {
		big := BigIntValue(Int128FromInt64(1))
		result, err := Add(big, IntValue(1), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagBigInt, result.Tag)
	})

	t.Run("float absorbs integer", func(t *testing.T) {
		result, err := Add(IntValue(2), FloatValue(0.5), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagFloat, result.Tag)
		assert.InDelta(t, 2.5, result.F, 1e-9)
	})

	t.Run("float absorbs big_integer", func(t *testing.T) {
		big := BigIntValue(Int128FromInt64(4))
		result, err := Add(big, FloatValue(0.5), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagFloat, result.Tag)
		assert.InDelta(t, 4.5, result.F, 1e-9)
	})

	t.Run("string concatenation with concat-eligible scalar", func(t *testing.T) {
		s := NewString([]byte("x="), &stats)
		result, err := Add(s, IntValue(1), &stats)
		require.NoError(t, err)
		assert.Equal(t, TagString, result.Tag)
		assert.Equal(t, "x=1", string(result.Str.Bytes))
		s.Release(&stats)
		result.Release(&stats)
	})

	t.Run("string plus array is an error", func(t *testing.T) {
		s := NewString([]byte("x"), &stats)
		arr := NewArray(0, &stats)
		_, err := Add(s, arr, &stats)
		assert.Error(t, err)
		s.Release(&stats)
		arr.Release(&stats)
	})

	t.Run("incompatible scalar types are an error", func(t *testing.T) {
		_, err := Add(BoolValue(true), NilValue(), &stats)
		assert.Error(t, err)
	})
}

func TestDivAndModByZero(t *testing.T) {
	t.Run("integer division by zero", func(t *testing.T) {
		_, err := Div(IntValue(1), IntValue(0))
		require.Error(t, err)
		var vmErr *VMError
		require.ErrorAs(t, err, &vmErr)
		assert.Equal(t, ErrDivisionByZero, vmErr.Kind)
	})

	t.Run("float division by zero", func(t *testing.T) {
		_, err := Div(FloatValue(1), FloatValue(0))
		require.Error(t, err)
	})

	t.Run("mod by zero", func(t *testing.T) {
		_, err := Mod(IntValue(5), IntValue(0))
		require.Error(t, err)
	})
}

func TestDivTruncatesTowardZero(t *testing.T) {
	cases := []struct {
		name     string
		a, b     int64
		wantQuot int64
		wantRem  int64
	}{
		{"positive/positive", 7, 2, 3, 1},
		{"negative/positive", -7, 2, -3, -1},
		{"positive/negative", 7, -2, -3, 1},
		{"negative/negative", -7, -2, 3, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quot, err := Div(IntValue(tc.a), IntValue(tc.b))
			require.NoError(t, err)
			assert.Equal(t, tc.wantQuot, quot.I)

			rem, err := Mod(IntValue(tc.a), IntValue(tc.b))
			require.NoError(t, err)
			assert.Equal(t, tc.wantRem, rem.I)
		})
	}
}

func TestToIntAndToFloatCoercions(t *testing.T) {
	var stats AllocStats

	t.Run("string to int", func(t *testing.T) {
		s := NewString([]byte("42"), &stats)
		v, err := ToInt(s)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v.I)
		s.Release(&stats)
	})

	t.Run("invalid string to int is an error", func(t *testing.T) {
		s := NewString([]byte("not-a-number"), &stats)
		_, err := ToInt(s)
		assert.Error(t, err)
		s.Release(&stats)
	})

	t.Run("bool to int", func(t *testing.T) {
		v, err := ToInt(BoolValue(true))
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.I)
	})

	t.Run("float truncates toward zero", func(t *testing.T) {
		v, err := ToInt(FloatValue(-3.9))
		require.NoError(t, err)
		assert.Equal(t, int64(-3), v.I)
	})

	t.Run("int to float", func(t *testing.T) {
		v, err := ToFloat(IntValue(3))
		require.NoError(t, err)
		assert.InDelta(t, 3.0, v.F, 1e-9)
	})
}
