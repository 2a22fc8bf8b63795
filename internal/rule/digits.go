package rule

import "math/big"

// textBase is the largest base big.Int formats and parses natively.
const textBase = 62

// expandDigits writes the base-b digits of x into dst, least significant
// first. dst must be long enough to hold every digit.
func expandDigits(dst []uint8, x *big.Int, base int) {
	for i := range dst {
		dst[i] = 0
	}
	if x.Sign() == 0 {
		return
	}
	if base <= textBase {
		s := x.Text(base)
		for k := 0; k < len(s); k++ {
			dst[k] = digitValue(s[len(s)-1-k])
		}
		return
	}
	q := new(big.Int).Set(x)
	b := big.NewInt(int64(base))
	r := new(big.Int)
	for k := 0; q.Sign() > 0; k++ {
		q.QuoRem(q, b, r)
		dst[k] = uint8(r.Int64())
	}
}

// collapseDigits is the inverse of expandDigits.
func collapseDigits(digits []uint8, base int) *big.Int {
	if base <= textBase {
		buf := make([]byte, len(digits))
		for k, d := range digits {
			buf[len(digits)-1-k] = digitChar(d)
		}
		x, _ := new(big.Int).SetString(string(buf), base)
		return x
	}
	x := new(big.Int)
	b := big.NewInt(int64(base))
	for k := len(digits) - 1; k >= 0; k-- {
		x.Mul(x, b)
		x.Add(x, big.NewInt(int64(digits[k])))
	}
	return x
}

func digitValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'z':
		return c - 'a' + 10
	default:
		return c - 'A' + 36
	}
}

func digitChar(d uint8) byte {
	switch {
	case d < 10:
		return '0' + d
	case d < 36:
		return 'a' + d - 10
	default:
		return 'A' + d - 36
	}
}
