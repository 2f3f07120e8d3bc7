package profile

import (
	"testing"

	"sheet2bill/config"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		name     string
		lastname string
		want     string
	}{
		{"John", "Doe", "john-doe"},
		{"  Anna ", " Lee ", "anna-lee"},
		{"Jean-Luc", "Picard", "jean-luc-picard"},
		{"Ünïcode", "Nâme", "ncode-nme"},
		{"", "", "freelancer"},
		{"!!!", "###", "freelancer"},
		{"A  B", "C", "a-b-c"},
	}

	for _, tc := range cases {
		got := MakeSlug(tc.name, tc.lastname)
		if got != tc.want {
			t.Errorf("MakeSlug(%q, %q) = %q, want %q", tc.name, tc.lastname, got, tc.want)
		}
	}
}

func TestBuildPublicURLUsesConfiguredBase(t *testing.T) {
	old := config.APP_URL
	config.APP_URL = "https://sheet2bill.example"
	defer func() { config.APP_URL = old }()

	got := BuildPublicURL("john-doe-32")
	want := "https://sheet2bill.example/p/john-doe-32"
	if got != want {
		t.Errorf("BuildPublicURL = %q, want %q", got, want)
	}
}
