package uvci

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Curve fit of the Swedish rollout. The opaque id is read as a running dose
// counter; up to saturationDoses the month follows a tangent curve centred on
// curveCentre, past it a constant monthly rate is assumed. Every step is
// computed in float32.
const (
	opaqueIDLetter = "V"

	saturationDoses float32 = 13983264
	curveCentre     float32 = 6991632
	curveScale      float32 = 5536858
	curveOffset     float32 = 5.03
	curveGain       float32 = 1.6
	dosesPerMonth   float32 = 1552008

	firstRolloutYear = 2021
	preRolloutYear   = 2020
	monthsPerYear    = 12
)

// EstimateVaccinationDate approximates the month (1-12) and year of a Swedish
// vaccination from its opaque id, e.g. "V12907267" -> (8, 2021). Unparsable,
// NaN or negative ids yield (0, 0).
func EstimateVaccinationDate(opaqueID string) (month uint8, year uint16) {
	doses, ok := parseDoses(strings.ReplaceAll(opaqueID, opaqueIDLetter, ""))
	if !ok {
		return 0, 0
	}

	var m uint16
	if doses <= saturationDoses {
		x := float32((curveCentre - doses) / curveScale)
		tan := float32(math.Tan(float64(x)))
		// No fused multiply-add: each product is rounded to float32.
		scaled := float32(-tan * curveGain)
		m = saturateUint16(math.Round(float64(float32(curveOffset + scaled))))
	} else {
		m = saturateUint16(math.Floor(float64(float32(doses / dosesPerMonth))))
	}

	if m == 0 {
		year = preRolloutYear
	} else {
		year = (m-1)/monthsPerYear + firstRolloutYear
	}

	if m == 0 {
		m = monthsPerYear
	}
	for m > monthsPerYear {
		m -= monthsPerYear
	}
	return uint8(m), year
}

// parseDoses reads s as a decimal float32. Hex literals and digit separators,
// which strconv would otherwise take, are refused. Values beyond the float32
// range saturate to infinity.
func parseDoses(s string) (float32, bool) {
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) || f < 0 {
		return 0, false
	}
	return float32(f), true
}

func saturateUint16(f float64) uint16 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(f)
	}
}
