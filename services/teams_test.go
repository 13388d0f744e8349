package services

import "testing"

func TestTeamAbbrFromID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1610612743", "DEN"},
		{"1610612747", "LAL"},
		{"1610612760", "OKC"},
		{"0", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TeamAbbrFromID(tt.id); got != tt.want {
			t.Errorf("TeamAbbrFromID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestTeamAbbrFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Denver Nuggets", "DEN"},
		{"Los Angeles Lakers", "LAL"},
		{"LA Clippers", "LAC"},
		{"Oklahoma City Thunder", "OKC"},
		{"Not A Team", ""},
	}

	for _, tt := range tests {
		if got := TeamAbbrFromName(tt.name); got != tt.want {
			t.Errorf("TeamAbbrFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
