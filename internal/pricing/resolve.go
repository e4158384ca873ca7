package pricing

// PartialTotals carries the totals fields of an order exactly as the
// backend stored them. All amounts are non-negative, so zero doubles as
// "absent"; the resolution rules only trust values > 0.
type PartialTotals struct {
	Subtotal       int64
	TotalAmount    int64
	ShippingFee    int64
	DiscountAmount int64
	FinalAmount    int64
}

// Totals is a fully resolved, internally consistent tuple of order figures.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingFee    int64 `json:"shippingFee"`
	DiscountAmount int64 `json:"discountAmount"`
	FinalAmount    int64 `json:"finalAmount"`
}

// Line is the slice of an order line the resolver needs.
type Line struct {
	UnitPrice int64
	Quantity  int
	Subtotal  int64
}

func (l Line) subtotal() int64 {
	if l.Subtotal > 0 {
		return l.Subtotal
	}
	return l.UnitPrice * int64(l.Quantity)
}

// subtotalRule produces a candidate subtotal from one source. Rules are
// ordered from most to least authoritative; the first one that reports ok
// wins. New backend shapes get a new rule, not a new branch.
type subtotalRule struct {
	name  string
	apply func(in PartialTotals, lines []Line) (int64, bool)
}

var subtotalRules = []subtotalRule{
	{
		name: "explicit subtotal",
		apply: func(in PartialTotals, _ []Line) (int64, bool) {
			return in.Subtotal, in.Subtotal > 0
		},
	},
	{
		name: "legacy totalAmount",
		apply: func(in PartialTotals, _ []Line) (int64, bool) {
			return in.TotalAmount, in.TotalAmount > 0
		},
	},
	{
		name: "sum of lines",
		apply: func(_ PartialTotals, lines []Line) (int64, bool) {
			if len(lines) == 0 {
				return 0, false
			}
			var sum int64
			for _, l := range lines {
				sum += l.subtotal()
			}
			return sum, sum > 0
		},
	},
}

// Resolve derives one consistent totals tuple from a partially populated
// order record. Each field is resolved independently against its rule
// order; finalAmount is the only field allowed to feed a value back into
// subtotal, for legacy rows that stored nothing but the grand total.
func Resolve(in PartialTotals, lines []Line) Totals {
	var out Totals

	for _, rule := range subtotalRules {
		if v, ok := rule.apply(in, lines); ok {
			out.Subtotal = v
			break
		}
	}

	if in.ShippingFee > 0 {
		out.ShippingFee = in.ShippingFee
	} else {
		out.ShippingFee = ShippingFee(out.Subtotal)
	}

	if in.DiscountAmount > 0 {
		out.DiscountAmount = in.DiscountAmount
	}

	if in.FinalAmount > 0 {
		out.FinalAmount = in.FinalAmount
		if out.Subtotal == 0 {
			out.Subtotal = clampZero(in.FinalAmount + out.DiscountAmount - out.ShippingFee)
		}
	} else {
		out.FinalAmount = clampZero(out.Subtotal + out.ShippingFee - out.DiscountAmount)
	}

	return out
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
