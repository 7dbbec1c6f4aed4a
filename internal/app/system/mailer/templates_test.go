package mailer_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/cityfix/internal/app/system/mailer"
)

func TestBuildWelcomeEmail(t *testing.T) {
	e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName:  "CityFix",
		FirstName: "Ada",
		LoginLink: "https://cityfix.example/login",
	})

	if e.Subject != "Welcome to CityFix" {
		t.Errorf("subject: got %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "Hi Ada") {
		t.Errorf("text body missing greeting: %q", e.TextBody)
	}
	if !strings.Contains(e.TextBody, "https://cityfix.example/login") {
		t.Error("text body missing login link")
	}
	if !strings.Contains(e.HTMLBody, "CityFix") || !strings.Contains(e.HTMLBody, "Ada") {
		t.Error("html body missing site name or first name")
	}
}

func TestBuildWelcomeEmail_EscapesHTML(t *testing.T) {
	e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName:  "CityFix",
		FirstName: "<script>alert(1)</script>",
		LoginLink: "https://cityfix.example/login",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("html body must escape template data")
	}
}
