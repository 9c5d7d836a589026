package orderline

import "testing"

func TestTotal(t *testing.T) {
	lines := []Line{
		{ItemID: "a", UnitPrice: 980, Quantity: 2},
		{ItemID: "b", UnitPrice: 200, Quantity: 1},
	}

	if got := Total(lines); got != 2160 {
		t.Errorf("expected total 2160, got %d", got)
	}

	if got := Total(nil); got != 0 {
		t.Errorf("expected zero total for no lines, got %d", got)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		dst  []Line
		src  []Line
		want []Line
	}{
		{
			name: "merge into empty",
			dst:  nil,
			src:  []Line{{ItemID: "a", Quantity: 2}},
			want: []Line{{ItemID: "a", Quantity: 2}},
		},
		{
			name: "same item adds quantities",
			dst:  []Line{{ItemID: "a", Quantity: 2}},
			src:  []Line{{ItemID: "a", Quantity: 1}},
			want: []Line{{ItemID: "a", Quantity: 3}},
		},
		{
			name: "new item appends",
			dst:  []Line{{ItemID: "a", Quantity: 2}},
			src:  []Line{{ItemID: "b", Quantity: 1}},
			want: []Line{{ItemID: "a", Quantity: 2}, {ItemID: "b", Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.dst, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i].ItemID != tt.want[i].ItemID || got[i].Quantity != tt.want[i].Quantity {
					t.Errorf("line %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	dst := []Line{{ItemID: "a", Quantity: 2}}
	src := []Line{{ItemID: "a", Quantity: 1}}

	Merge(dst, src)

	if dst[0].Quantity != 2 {
		t.Errorf("expected dst untouched, got quantity %d", dst[0].Quantity)
	}
	if src[0].Quantity != 1 {
		t.Errorf("expected src untouched, got quantity %d", src[0].Quantity)
	}
}
