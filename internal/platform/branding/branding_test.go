package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName != "Noma" {
		t.Fatalf("AppName = %q, want %q", AppName, "Noma")
	}
}

func TestAuthorsListsTeam(t *testing.T) {
	if len(Authors) != 3 {
		t.Fatalf("len(Authors) = %d, want 3", len(Authors))
	}
}
