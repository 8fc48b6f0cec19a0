package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSignificantTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops short words and punctuation",
			query: "What is photosynthesis, and why?",
			want:  []string{"photosynthesis"},
		},
		{
			name:  "caps at five terms",
			query: "photosynthesis chlorophyll respiration mitochondria osmosis diffusion membrane",
			want:  []string{"photosynthesis", "chlorophyll", "respiration", "mitochondria", "osmosis"},
		},
		{
			name:  "nothing significant",
			query: "why is it so",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := significantTerms(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("significantTerms(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("term %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	text := strings.Repeat("a", 500) + "photosynthesis" + strings.Repeat("b", 500)

	got := excerpt(text, "PHOTOSYNTHESIS", 100)
	if len(got) != 100 {
		t.Fatalf("excerpt length = %d, want 100", len(got))
	}
	if !strings.Contains(got, "photosynthesis"[:10]) {
		t.Errorf("excerpt does not contain the matched term: %q", got)
	}

	// Term absent: returns the head of the text.
	head := excerpt("short text", "missing", 100)
	if head != "short text" {
		t.Errorf("excerpt with missing term = %q, want full short text", head)
	}
}

func TestExcerptKeepsRunesWhole(t *testing.T) {
	// Multi-byte runes on both sides of the term force the window edges onto
	// boundaries that are not byte offsets of whole characters.
	text := strings.Repeat("光合作用は", 40) + "photosynthesis" + strings.Repeat("葉緑体の中", 40)

	for _, size := range []int{99, 100, 101, 103} {
		got := excerpt(text, "photosynthesis", size)
		if !utf8.ValidString(got) {
			t.Errorf("excerpt(size=%d) split a rune: %q", size, got)
		}
		if !strings.Contains(got, "photosynthesis") {
			t.Errorf("excerpt(size=%d) lost the matched term: %q", size, got)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "short title unchanged",
			in:   "Explain photosynthesis",
			want: "Explain photosynthesis",
		},
		{
			name: "long ascii title cut with ellipsis",
			in:   strings.Repeat("x", 80),
			want: strings.Repeat("x", 57) + "...",
		},
		{
			name: "long multibyte title cut on rune boundaries",
			in:   strings.Repeat("光", 80),
			want: strings.Repeat("光", 57) + "...",
		},
		{
			name: "exactly sixty runes kept whole",
			in:   strings.Repeat("合", 60),
			want: strings.Repeat("合", 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.in)
			if got != tt.want {
				t.Errorf("truncateTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateTitle produced invalid UTF-8: %q", got)
			}
		})
	}
}
