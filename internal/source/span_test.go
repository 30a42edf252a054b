package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{
			name: "disjoint spans",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 1, Start: 30, End: 40},
			want: Span{File: 1, Start: 10, End: 40},
		},
		{
			name: "nested span",
			a:    Span{File: 1, Start: 10, End: 40},
			b:    Span{File: 1, Start: 15, End: 20},
			want: Span{File: 1, Start: 10, End: 40},
		},
		{
			name: "different files keep receiver",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 2, Start: 0, End: 50},
			want: Span{File: 1, Start: 10, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 3, Start: 5, End: 25}
	if !outer.Contains(Span{File: 3, Start: 5, End: 25}) {
		t.Fatalf("span must contain itself")
	}
	if outer.Contains(Span{File: 3, Start: 4, End: 10}) {
		t.Fatalf("span starting before outer must not be contained")
	}
	if outer.Contains(Span{File: 4, Start: 6, End: 7}) {
		t.Fatalf("span from another file must not be contained")
	}
}

func TestSpanString(t *testing.T) {
	if got := (Span{File: 2, Start: 3, End: 9}).String(); got != "2:3-9" {
		t.Fatalf("String() = %q", got)
	}
}
