package registry

import "testing"

func TestParseDANECode(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "department code with trailing dot",
			raw:  "05.",
			want: 5,
		},
		{
			name: "municipality code with internal dot",
			raw:  "05.001",
			want: 5001,
		},
		{
			name: "plain number",
			raw:  "11001",
			want: 11001,
		},
		{
			name: "surrounding whitespace",
			raw:  " 05001. ",
			want: 5001,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "only dots",
			raw:     "...",
			wantErr: true,
		},
		{
			name:    "letters",
			raw:     "05A",
			wantErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ParseDANECode(testCase.raw)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("ParseDANECode(%q) error = nil", testCase.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDANECode(%q) error = %v", testCase.raw, err)
			}
			if got != testCase.want {
				t.Fatalf("ParseDANECode(%q) = %d, want %d", testCase.raw, got, testCase.want)
			}
		})
	}
}
