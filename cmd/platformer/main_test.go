package main

import "testing"

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"[::1]:2022", "2022"},
		{"nonsense", "23234"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.want {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"list": false, "play": false, "menu": false, "serve": false, "scores": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
