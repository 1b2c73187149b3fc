package uvci

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateVaccinationDate(t *testing.T) {
	tests := []struct {
		name      string
		opaqueID  string
		wantMonth uint8
		wantYear  uint16
	}{
		{name: "start of rollout", opaqueID: "0", wantMonth: 12, wantYear: 2020},
		{name: "march", opaqueID: "2014920", wantMonth: 3, wantYear: 2021},
		{name: "curve centre", opaqueID: "6991632", wantMonth: 5, wantYear: 2021},
		{name: "august", opaqueID: "12916227", wantMonth: 8, wantYear: 2021},
		{name: "september", opaqueID: "13592955", wantMonth: 9, wantYear: 2021},
		{name: "curve boundary", opaqueID: "13983264", wantMonth: 10, wantYear: 2021},
		{name: "linear regime max", opaqueID: "99999999", wantMonth: 4, wantYear: 2026},
		{name: "single dose population", opaqueID: "10427296", wantMonth: 6, wantYear: 2021},
		{name: "double dose population", opaqueID: "20854592", wantMonth: 1, wantYear: 2022},
		{name: "booster population", opaqueID: "31281888", wantMonth: 8, wantYear: 2022},
		{name: "prefixed id", opaqueID: "V12907267", wantMonth: 8, wantYear: 2021},
		{name: "leading zeros", opaqueID: "V00016227", wantMonth: 12, wantYear: 2020},
		{name: "every V stripped", opaqueID: "VV1291V6227", wantMonth: 8, wantYear: 2021},
		{name: "rounds to a monthly multiple in float32", opaqueID: "V31040159", wantMonth: 8, wantYear: 2022},
		{name: "tangent boundary in float32", opaqueID: "12506276", wantMonth: 8, wantYear: 2021},
		{name: "beyond float32 range saturates", opaqueID: "1E50", wantMonth: 3, wantYear: 7482},
		{name: "just past boundary", opaqueID: "13983265", wantMonth: 9, wantYear: 2021},
		{name: "negative", opaqueID: "-5", wantMonth: 0, wantYear: 0},
		{name: "not a number", opaqueID: "VABCDEFGH", wantMonth: 0, wantYear: 0},
		{name: "empty", opaqueID: "", wantMonth: 0, wantYear: 0},
		{name: "only letter", opaqueID: "V", wantMonth: 0, wantYear: 0},
		{name: "hex literal", opaqueID: "0X10", wantMonth: 0, wantYear: 0},
		{name: "digit separators", opaqueID: "1_000", wantMonth: 0, wantYear: 0},
		{name: "nan", opaqueID: "NAN", wantMonth: 0, wantYear: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := EstimateVaccinationDate(tt.opaqueID)
			assert.Equal(t, tt.wantMonth, month, "month")
			assert.Equal(t, tt.wantYear, year, "year")
		})
	}
}

func TestEstimateVaccinationDate_MonthAlwaysInRange(t *testing.T) {
	for n := 0; n <= 400_000_000; n += 1_234_567 {
		month, year := EstimateVaccinationDate(strconv.Itoa(n))
		assert.GreaterOrEqual(t, month, uint8(1))
		assert.LessOrEqual(t, month, uint8(12))
		assert.GreaterOrEqual(t, year, uint16(2020))
	}
}
