package spawn

import (
	"reflect"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{
			name: "simple words",
			in:   "xterm -e htop",
			want: []string{"xterm", "-e", "htop"},
		},
		{
			name: "double quotes keep spaces",
			in:   `notify-send "hello world"`,
			want: []string{"notify-send", "hello world"},
		},
		{
			name: "single quotes keep double quotes",
			in:   `sh -c 'echo "a b"'`,
			want: []string{"sh", "-c", `echo "a b"`},
		},
		{
			name: "backslash escapes space",
			in:   `open my\ file.txt`,
			want: []string{"open", "my file.txt"},
		},
		{
			name: "tabs separate",
			in:   "a\tb",
			want: []string{"a", "b"},
		},
		{
			name:    "unbalanced quote",
			in:      `xterm -title "oops`,
			wantErr: true,
		},
		{
			name:    "trailing backslash",
			in:      `xterm \`,
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "   ",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitCommand(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
