package pagination

import "testing"

func TestWindowAndMeta(t *testing.T) {
	tests := []struct {
		name             string
		page, limit      int
		total            int
		wantStart        int
		wantEnd          int
		wantPages        int
		wantNext, wantPr bool
	}{
		{"first page", 1, 2, 5, 0, 2, 3, true, false},
		{"last partial page", 3, 2, 5, 4, 5, 3, false, true},
		{"past the end", 9, 2, 5, 5, 5, 3, false, true},
		{"clamped inputs", 0, 0, 3, 0, 3, 1, false, false},
		{"limit capped", 1, 1000, 150, 0, MaxLimit, 2, true, false},
		{"empty", 1, 10, 0, 0, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams(tt.page, tt.limit)
			start, end := p.Window(tt.total)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Window = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
			m := GetMeta(p, tt.total)
			if m.TotalPages != tt.wantPages || m.HasNext != tt.wantNext || m.HasPrev != tt.wantPr {
				t.Errorf("meta = %+v", m)
			}
		})
	}
}
