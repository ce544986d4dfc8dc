package history

import (
	"hash/fnv"
	"time"
)

// SeedSpec describes a synthetic price series for one asset.
type SeedSpec struct {
	Asset string
	Base  float64
	// Step is multiplied by an integer offset in [-Steps, Steps).
	Step  float64
	Steps int
}

// DefaultSeeds mirror the demo data the service ships with: gold around 6200
// (±200) and silver around 74 (±2.5), per gram.
var DefaultSeeds = []SeedSpec{
	{Asset: "gold", Base: 6200, Step: 2, Steps: 100},
	{Asset: "silver", Base: 74, Step: 0.5, Steps: 5},
}

// Seed generates days of records for each SeedSpec, ending the day before end. The
// variation is derived from the date so repeated runs produce the same series.
func Seed(specs []SeedSpec, days int, end time.Time) []Record {
	if days <= 0 || len(specs) == 0 {
		return nil
	}
	end = Day(end)
	out := make([]Record, 0, days*len(specs))
	for back := 1; back <= days; back++ {
		date := end.AddDate(0, 0, -back)
		h := dateHash(date)
		for _, s := range specs {
			offset := 0
			if s.Steps > 0 {
				offset = int(h%uint32(2*s.Steps)) - s.Steps
			}
			out = append(out, Record{
				Asset:  s.Asset,
				Date:   date,
				Price:  s.Base + float64(offset)*s.Step,
				Unit:   "g",
				Source: "seed",
			})
		}
	}
	return out
}

func dateHash(t time.Time) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(t.Format(time.DateOnly)))
	return h.Sum32()
}
