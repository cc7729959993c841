package performance

import "github.com/folioapp/folio/internal/models"

// normalizeBenchmark aligns a raw benchmark series onto the portfolio's date
// axis, carrying the last quote forward across gaps, and rescales it so the
// first valid value reads 100. Dates before the first valid quote emit 0 so
// chart series keep matching lengths.
func normalizeBenchmark(raw models.DateSeries, dateAxis []string) []models.BenchmarkRecord {
	records := make([]models.BenchmarkRecord, 0, len(dateAxis))

	var carry, base float64
	for _, date := range dateAxis {
		if v, ok := raw[date]; ok {
			carry = v
		}

		if base == 0 && carry > 0 {
			base = carry
		}

		normalized := 0.0
		if base > 0 {
			normalized = 100 * carry / base
		}

		records = append(records, models.BenchmarkRecord{
			Date:            date,
			RawValue:        carry,
			NormalizedValue: normalized,
		})
	}

	return records
}
