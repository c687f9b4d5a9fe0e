package main

import (
	"testing"

	"github.com/gstoney/mclimbo/version"
)

func TestProtocolOf(t *testing.T) {
	tests := []struct {
		desc      string
		proto     int
		release   string
		want      int32
		expectErr bool
	}{
		{"Protocol only", 47, "", 47, false},
		{"Release wins", 47, "1.20.4", version.V1_20_3.Protocol(), false},
		{"Alias release", 0, "1.21.1", version.V1_21.Protocol(), false},
		{"Unknown release", 47, "1.99", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := protocolOf(tc.proto, tc.release)
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
