package orderline

// Line is one confirmed or in-cart order position: a snapshot of the menu
// item at add-time plus a quantity. Snapshots keep settled totals stable
// when the menu changes later.
type Line struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Amount is the line's contribution to the total.
func (l Line) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Total sums lines.
func Total(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount()
	}

	return total
}

// Merge folds src into dst: quantities add up for lines with the same item
// id, new item ids are appended in src order. Neither input is mutated.
func Merge(dst, src []Line) []Line {
	merged := make([]Line, len(dst))
	copy(merged, dst)

	for _, line := range src {
		found := false
		for i := range merged {
			if merged[i].ItemID == line.ItemID {
				merged[i].Quantity += line.Quantity
				found = true

				break
			}
		}
		if !found {
			merged = append(merged, line)
		}
	}

	return merged
}
