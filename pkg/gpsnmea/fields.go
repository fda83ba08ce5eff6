// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

// GrabFields converts a numeric field to an unsigned integer, keeping mult
// fractional digits. "4.5" with mult 1 becomes 45; extra fractional digits
// are truncated, never rounded. The decimal point is only honored when
// mult is non-zero; with mult 0 the scan stops there. Characters that are
// neither digits nor the first decimal point are skipped. A field longer
// than 15 characters yields 0. The source string is never modified.
func GrabFields(src string, mult uint8) uint32 {
	var value uint32
	var fracRemaining uint8
	sawPoint := false
	scanned := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		scanned++
		if scanned > 15 {
			return 0
		}
		if c == '.' && !sawPoint {
			if mult == 0 {
				break
			}
			sawPoint = true
			fracRemaining = mult
			continue
		}
		if c < '0' || c > '9' {
			continue
		}
		if sawPoint {
			if fracRemaining == 0 {
				break
			}
			fracRemaining--
		}
		value = value*10 + uint32(c-'0')
	}
	return value
}

// CoordToDegrees converts an NMEA latitude/longitude field in
// (d)ddmm.mmmm form to degrees scaled by 1e7. The minutes part, including
// up to four fractional digits, is divided by 60 in fixed point. A field
// whose integer part exceeds 15 characters yields 0.
func CoordToDegrees(s string) uint32 {
	// Scan the integer part up to the decimal point or first non-digit
	sep := 0
	for sep < len(s) && s[sep] >= '0' && s[sep] <= '9' {
		if sep >= 15 {
			return 0
		}
		sep++
	}

	var deg, min uint32
	i := 0
	for ; sep-i > 2; i++ {
		deg = deg*10 + uint32(s[i]-'0')
	}
	for ; i < sep; i++ {
		min = min*10 + uint32(s[i]-'0')
	}

	// Fractional minutes in ten-thousandths: always four positions, short
	// fields are zero-padded on the right
	var frac uint32
	if sep < len(s) && s[sep] == '.' {
		j := sep + 1
		for d := 0; d < 4; d++ {
			frac *= 10
			if j < len(s) && s[j] >= '0' && s[j] <= '9' {
				frac += uint32(s[j] - '0')
				j++
			}
		}
	}

	return deg*10000000 + (min*1000000+frac*100)/6
}

// ConstrainHDOP clamps a scaled HDOP value to the representable range
func ConstrainHDOP(hdop uint32) uint16 {
	if hdop > hdopMax {
		return hdopMax
	}
	return uint16(hdop)
}

// ConstrainEPE clamps a scaled position-error estimate to the representable range
func ConstrainEPE(epe uint32) uint16 {
	if epe > epeMax {
		return epeMax
	}
	return uint16(epe)
}
