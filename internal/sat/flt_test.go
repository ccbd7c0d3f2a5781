package sat

import "testing"

func TestFlt_ZeroAndInfAreOrderedExtremes(t *testing.T) {
	if ZeroFlt().Compare(InfFlt()) != -1 {
		t.Errorf("ZeroFlt.Compare(InfFlt) = %d, want -1", ZeroFlt().Compare(InfFlt()))
	}
	if InfFlt().Compare(ZeroFlt()) != 1 {
		t.Errorf("InfFlt.Compare(ZeroFlt) = %d, want 1", InfFlt().Compare(ZeroFlt()))
	}
	if ZeroFlt().Compare(ZeroFlt()) != 0 {
		t.Errorf("ZeroFlt.Compare(ZeroFlt) = %d, want 0", ZeroFlt().Compare(ZeroFlt()))
	}
}

func TestFltFromBase2_normalizesAndSaturates(t *testing.T) {
	tests := []struct {
		name string
		m uint32
		e int
		want Flt
	}{
		{"zero mantissa saturates to zero", 0, 100, ZeroFlt()},
		{"mantissa already normalized", 1 << 24, 0, packFlt(0, 0)},
		{"small mantissa shifts left", 1, 0, FltFromBase2(1<<24, -24)},
		{"exponent underflow saturates to zero", 1, fltMinExponent - 1, ZeroFlt()},
		{"exponent overflow saturates to infinity", 1 << 30, fltMaxExponent, InfFlt()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FltFromBase2(tc.m, tc.e); got != tc.want {
				t.Errorf("FltFromBase2(%d, %d) = %v, want %v", tc.m, tc.e, got, tc.want)
			}
		})
	}
}

func TestFltFromASCII(t *testing.T) {
	tests := []struct {
		name string
		in string
		wantInf bool
	}{
		{"integer literal", "2", false},
		{"fractional literal", "0.95", false},
		{"multi digit fraction", "1.1234", false},
		{"empty string is malformed", "", true},
		{"leading dot with no digits is malformed", ".", true},
		{"non numeric character is malformed", "1.2a", true},
		{"leading non digit is malformed", "a", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FltFromASCII(tc.in)
			if tc.wantInf && got != InfFlt() {
				t.Errorf("FltFromASCII(%q) = %v, want InfFlt", tc.in, got)
			}
			if !tc.wantInf && got == InfFlt() {
				t.Errorf("FltFromASCII(%q) = InfFlt, want a finite value", tc.in)
			}
		})
	}
}

func TestFlt_AddIsCommutativeAndMonotone(t *testing.T) {
	a := FltFromBase2(3, 0)
	b := FltFromBase2(5, 0)

	if a.Add(b) != b.Add(a) {
		t.Errorf("Add is not commutative: %v vs %v", a.Add(b), b.Add(a))
	}
	if a.Add(b).Compare(a) <= 0 {
		t.Errorf("a.Add(b) = %v, want strictly greater than a = %v", a.Add(b), a)
	}
	if a.Add(ZeroFlt()) != a {
		t.Errorf("a.Add(ZeroFlt) = %v, want %v unchanged", a.Add(ZeroFlt()), a)
	}
}

func TestFlt_AddSaturatesAtInfinity(t *testing.T) {
	if got := InfFlt().Add(InfFlt()); got != InfFlt() {
		t.Errorf("InfFlt.Add(InfFlt) = %v, want InfFlt", got)
	}
}

func TestFlt_MulByZeroIsZero(t *testing.T) {
	a := FltFromBase2(7, 3)
	if got := a.Mul(ZeroFlt()); got != ZeroFlt() {
		t.Errorf("a.Mul(ZeroFlt) = %v, want ZeroFlt", got)
	}
}

func TestFlt_MulSaturatesAtInfinity(t *testing.T) {
	big := FltFromBase2(1<<24-1, fltMaxExponent)
	if got := big.Mul(big); got != InfFlt() {
		t.Errorf("big.Mul(big) = %v, want InfFlt", got)
	}
}

func TestFlt_Log2(t *testing.T) {
	one := FltFromBase2(1, 0)
	if got := one.Log2(); got != 0 {
		t.Errorf("FltFromBase2(1, 0).Log2() = %d, want 0", got)
	}
	eight := FltFromBase2(8, 0)
	if got := eight.Log2(); got != 3 {
		t.Errorf("FltFromBase2(8, 0).Log2() = %d, want 3", got)
	}
}
