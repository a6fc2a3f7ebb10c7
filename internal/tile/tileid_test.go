package tile

import "testing"

func TestBefore(t *testing.T) {
	tests := []struct {
		a, b ID
		want bool
	}{
		{ID{0, 0, 1}, ID{5, 5, 2}, true},  // lower zoom first
		{ID{5, 5, 2}, ID{0, 0, 1}, false}, // higher zoom last
		{ID{1, 9, 3}, ID{2, 0, 3}, true},  // then by x
		{ID{1, 2, 3}, ID{1, 5, 3}, true},  // then by y
		{ID{1, 2, 3}, ID{1, 2, 3}, false}, // equal IDs
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSetUnique(t *testing.T) {
	s := Set{}
	s.Add(ID{1, 2, 3})
	s.Add(ID{1, 2, 3})
	s.Add(ID{4, 5, 3})

	if len(s) != 2 {
		t.Errorf("set should hold 2 unique IDs, got %d", len(s))
	}
	if !s.Contains(ID{1, 2, 3}) {
		t.Error("set should contain added ID")
	}
	if s.Contains(ID{9, 9, 9}) {
		t.Error("set should not contain missing ID")
	}
}

func TestSetSorted(t *testing.T) {
	s := Set{}
	s.Add(ID{3, 1, 4})
	s.Add(ID{0, 0, 2})
	s.Add(ID{3, 0, 4})
	s.Add(ID{1, 1, 4})

	sorted := s.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Before(sorted[i-1]) {
			t.Errorf("Sorted() out of order at %d: %v before %v", i, sorted[i], sorted[i-1])
		}
	}
	if sorted[0] != (ID{0, 0, 2}) {
		t.Errorf("lowest zoom should sort first, got %v", sorted[0])
	}
}

func TestString(t *testing.T) {
	if got := (ID{3, 7, 12}).String(); got != "12/3/7" {
		t.Errorf("String() = %q, want \"12/3/7\"", got)
	}
}
