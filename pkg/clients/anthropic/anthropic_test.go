package anthropic

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json untouched",
			in:   `{"price": "R$ 232,50"}`,
			want: `{"price": "R$ 232,50"}`,
		},
		{
			name: "json fence removed",
			in:   "```json\n{\"price\": 232.5}\n```",
			want: `{"price": 232.5}`,
		},
		{
			name: "bare fence removed",
			in:   "```\n[1, 2]\n```",
			want: "[1, 2]",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  [1]  ",
			want: "[1]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripFences(tc.in); got != tc.want {
				t.Errorf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
