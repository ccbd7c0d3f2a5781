package sat

// Flt is a 32 bit deterministic soft float used for all activity scores in
// the solver. Variable and clause activities must compare identically on
// every platform, so hardware IEEE 754 floats (whose rounding can differ
// across compilers and architectures) are never used here: Flt is packed as
// an 8 bit biased exponent followed by a 24 bit mantissa, and the packed
// representation is monotone in value, which means two Flt values can be
// compared with a plain unsigned comparison.
type Flt uint32

const (
	fltCarry = 1 << 25
	fltMSB = 1 << 24
	fltMaxMantissa = fltMSB - 1
	fltMinExponent = -128
	fltMaxExponent = 127
	fltExponentBias = 128
)

// ZeroFlt is the smallest representable value.
func ZeroFlt() Flt { return 0 }

// InfFlt is the saturating largest representable value.
func InfFlt() Flt { return 0xffffffff }

func packFlt(m uint32, e int) Flt {
	return Flt(m) | Flt(uint32(e+fltExponentBias)<<24)
}

func unpackFlt(f Flt) (m uint32, e int) {
	m = uint32(f) & fltMaxMantissa
	e = int(uint32(f)>>24) - fltExponentBias
	m |= fltMSB
	return m, e
}

// FltFromBase2 returns the Flt value m * 2^e, normalizing m into the 24 bit
// mantissa range and saturating to zero or infinity on under/overflow.
func FltFromBase2(m uint32, e int) Flt {
	if m == 0 {
		return ZeroFlt()
	}
	if m < fltMSB {
		for m < fltMSB {
			if e <= fltMinExponent {
				return ZeroFlt()
			}
			e--
			m <<= 1
		}
	} else {
		for m >= fltCarry {
			if e >= fltMaxExponent {
				return InfFlt()
			}
			e++
			m >>= 1
		}
	}
	m &^= fltMSB
	return packFlt(m, e)
}

// FltFromASCII parses a decimal literal such as "1.1" into a Flt, using only
// Flt arithmetic so that the constant is exactly as deterministic as every
// other activity computation. Malformed input saturates to InfFlt, mirroring
// the "better abort?" escape hatch of the reference implementation.
func FltFromASCII(dec string) Flt {
	ten := FltFromBase2(10, 0)
	oneTenth := FltFromBase2(26843546, -28)

	res := ZeroFlt()
	p := 0
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	if p >= len(dec) {
		return InfFlt()
	}
	ch := dec[p]
	p++

	if ch != '.' {
		if !isDigit(ch) {
			return InfFlt()
		}
		res = FltFromBase2(uint32(ch-'0'), 0)

		for p < len(dec) {
			ch = dec[p]
			p++
			if ch == '.' {
				break
			}
			if !isDigit(ch) {
				return InfFlt()
			}
			res = res.Mul(ten)
			res = res.Add(FltFromBase2(uint32(ch-'0'), 0))
		}
		if p >= len(dec) {
			return res
		}
	}

	if ch == '.' {
		if p >= len(dec) || !isDigit(dec[p]) {
			return InfFlt()
		}
		ch = dec[p]
		p++
		base := oneTenth
		res = res.Add(FltFromBase2(uint32(ch-'0'), 0).Mul(base))

		for p < len(dec) {
			ch = dec[p]
			p++
			if !isDigit(ch) {
				return InfFlt()
			}
			base = base.Mul(oneTenth)
			res = res.Add(FltFromBase2(uint32(ch-'0'), 0).Mul(base))
		}
	}

	return res
}

// Add returns a + b, renormalizing and saturating at InfFlt.
func (a Flt) Add(b Flt) Flt {
	if a < b {
		a, b = b, a
	}
	if b == 0 {
		return a
	}

	ma, ea := unpackFlt(a)
	mb, eb := unpackFlt(b)

	delta := uint(ea - eb)
	mb >>= delta
	if mb == 0 {
		return a
	}

	ma += mb
	if ma&fltCarry != 0 {
		if ea == fltMaxExponent {
			return InfFlt()
		}
		ea++
		ma >>= 1
	}

	ma &= fltMaxMantissa
	return packFlt(ma, ea)
}

// Mul returns a * b using a 64 bit intermediate, saturating at zero/infinity.
func (a Flt) Mul(b Flt) Flt {
	if a < b {
		a, b = b, a
	}
	if b == 0 {
		return ZeroFlt()
	}

	ma, ea := unpackFlt(a)
	mb, eb := unpackFlt(b)

	e := ea + eb + 24
	if e > fltMaxExponent {
		return InfFlt()
	}
	if e < fltMinExponent {
		return ZeroFlt()
	}

	accu := uint64(ma) * uint64(mb)
	accu >>= 24

	if accu >= fltCarry {
		if e == fltMaxExponent {
			return InfFlt()
		}
		e++
		accu >>= 1
		if accu >= fltCarry {
			return InfFlt()
		}
	}

	m := uint32(accu) &^ fltMSB
	return packFlt(m, e)
}

// Log2 returns the base-2 logarithm rounded towards the stored exponent; it
// is only meaningful for normalized non-zero values. The solver itself does
// not call it: reduceDB ranks learned clauses by activity alone.
func (a Flt) Log2() int {
	_, e := unpackFlt(a)
	return e + 24
}

// Compare returns -1, 0 or 1 the way a three-way comparator does. Because the
// packed representation is monotone in value this is just an unsigned
// integer comparison, never hardware float comparison.
func (a Flt) Compare(b Flt) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
