package vm

import "testing"

func TestEqNumericWidening(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"integer equals equal integer", IntValue(2), IntValue(2), true},
		{"integer equals equal float", IntValue(2), FloatValue(2.0), true},
		{"integer equals equal big_integer", IntValue(2), BigIntValue(Int128FromInt64(2)), true},
		{"different integers are not equal", IntValue(2), IntValue(3), false},
		{"bool does not equal integer", BoolValue(true), IntValue(1), false},
		{"null equals null", NilValue(), NilValue(), true},
		{"null does not equal integer zero", NilValue(), IntValue(0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Eq(tc.a, tc.b); got != tc.want {
				t.Errorf("Eq(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestOrderingOnNonNumericIsFalse(t *testing.T) {
	if Lt(BoolValue(true), BoolValue(false)) {
		t.Errorf("Lt on booleans: want false, got true")
	}
	if Gt(NilValue(), IntValue(1)) {
		t.Errorf("Gt(null, 1): want false, got true")
	}
}

func TestStringEquality(t *testing.T) {
	var stats AllocStats
	a := NewString([]byte("abc"), &stats)
	b := NewString([]byte("abc"), &stats)
	c := NewString([]byte("abd"), &stats)

	if !Eq(a, b) {
		t.Errorf("Eq on identical string contents: want true")
	}
	if Eq(a, c) {
		t.Errorf("Eq on differing string contents: want false")
	}

	a.Release(&stats)
	b.Release(&stats)
	c.Release(&stats)
}

func TestArrayEqualityIsElementWise(t *testing.T) {
	var stats AllocStats
	a := NewArrayFrom([]Value{IntValue(1), IntValue(2)}, &stats)
	b := NewArrayFrom([]Value{IntValue(1), IntValue(2)}, &stats)
	c := NewArrayFrom([]Value{IntValue(1), IntValue(3)}, &stats)

	if !Eq(a, b) {
		t.Errorf("Eq on element-wise equal arrays: want true")
	}
	if Eq(a, c) {
		t.Errorf("Eq on element-wise differing arrays: want false")
	}

	a.Release(&stats)
	b.Release(&stats)
	c.Release(&stats)
}
