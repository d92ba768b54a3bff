package mailer

import (
	"strings"
	"testing"
)

func TestRenderCredentialsBodyContainsCredentials(t *testing.T) {
	body := renderCredentialsBody("Thandi", "thandi@example.com", "s3cret-pass")

	for _, want := range []string{"Hello Thandi", "thandi@example.com", "s3cret-pass", "Security Notice"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderCredentialsBodyEscapesHTML(t *testing.T) {
	body := renderCredentialsBody("<script>", "a@b.com", `pass"word`)
	if strings.Contains(body, "<script>") {
		t.Fatal("first name not escaped")
	}
	if strings.Contains(body, `pass"word`) {
		t.Fatal("password not escaped")
	}
}
