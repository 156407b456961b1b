package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"other file", Span{File: 1, Start: 5, End: 6}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 5, End: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpanShift(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}.Shift(10)
	if s != (Span{File: 3, Start: 14, End: 19}) {
		t.Fatalf("Shift() = %+v", s)
	}
	if s.Len() != 5 || s.Empty() {
		t.Fatalf("Len/Empty broken for %+v", s)
	}
	if got := s.String(); got != "3:14-19" {
		t.Fatalf("String() = %q", got)
	}
}
