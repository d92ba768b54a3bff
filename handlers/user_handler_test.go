package handlers

import "testing"

func TestProvisionPasswordKeepsSupplied(t *testing.T) {
	if got := provisionPassword("hunter2hunter2"); got != "hunter2hunter2" {
		t.Fatalf("supplied password changed to %q", got)
	}
}

func TestProvisionPasswordGeneratesWhenEmpty(t *testing.T) {
	got := provisionPassword("")
	if len(got) != 12 {
		t.Fatalf("generated password length = %d, want 12", len(got))
	}
	if got == provisionPassword("") {
		t.Fatal("generated passwords should not repeat")
	}
}
