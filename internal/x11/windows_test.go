package x11

import "testing"

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		spec    string
		want    uint32
		wantErr bool
	}{
		{spec: "0x3400007", want: 0x3400007},
		{spec: "54525959", want: 54525959},
		{spec: "0xffffffff", want: 0xffffffff},
		{spec: "banana", wantErr: true},
		{spec: "0x", wantErr: true},
		{spec: "-5", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseWindowID(tc.spec)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseWindowID(%q): expected error, got %d", tc.spec, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWindowID(%q): %v", tc.spec, err)
			continue
		}
		if uint32(got) != tc.want {
			t.Errorf("ParseWindowID(%q) = %d, want %d", tc.spec, got, tc.want)
		}
	}
}
