package scrape

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fullProfileHTML = `<html><body>
<h1>Dr. Jane Doe</h1>
<h2 class="profile-subtitle">PhD, LMFT</h2>
<div class="profile-location">Austin, TX</div>
<div data-test="provider-statement">Helping adults find calm.</div>
<div data-test="about-me-text">I work with adults navigating anxiety and burnout.</div>
<img data-test="provider-image" src="https://cdn.example.com/jane.jpg">
<ul><li data-test="specialty-item">Anxiety</li><li data-test="specialty-item">Depression</li></ul>
<ul class="profile-issues"><li>Stress</li></ul>
<div data-test="session-fee">$180 per session</div>
<ul class="languages-list"><li>English</li><li>Spanish</li></ul>
<div class="profile-website"><a href="https://janedoe.example.com">Website</a></div>
</body></html>`

// Fallback markup: no data-test attributes, only class-based selectors.
const fallbackProfileHTML = `<html><body>
<div class="profile-heading"><h1>John Smith</h1></div>
<section class="about-section"><p class="bio-text">Twenty years of couples work.</p></section>
<ul class="profile-specialties"><li>Couples</li><li>Family</li><li>Grief</li></ul>
</body></html>`

const photoOnlyHTML = `<html><body>
<img class="photo" alt="photo of therapist" src="https://cdn.example.com/x.jpg">
</body></html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractRecordFullProfile(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := extractRecord(parseDoc(t, fullProfileHTML), "https://www.psychologytoday.com/us/therapists/jane-doe/123", now)

	if rec.Name != "Dr. Jane Doe" {
		t.Fatalf("name = %q", rec.Name)
	}
	if rec.Credentials != "PhD, LMFT" {
		t.Fatalf("credentials = %q", rec.Credentials)
	}
	if rec.Headline != "Helping adults find calm." {
		t.Fatalf("headline = %q", rec.Headline)
	}
	if rec.AboutMe != "I work with adults navigating anxiety and burnout." {
		t.Fatalf("aboutMe = %q", rec.AboutMe)
	}
	if rec.PhotoURL != "https://cdn.example.com/jane.jpg" {
		t.Fatalf("photoUrl = %q", rec.PhotoURL)
	}
	if len(rec.Specialties) != 2 || rec.Specialties[0] != "Anxiety" {
		t.Fatalf("specialties = %v", rec.Specialties)
	}
	if len(rec.Issues) != 1 || rec.Issues[0] != "Stress" {
		t.Fatalf("issues = %v", rec.Issues)
	}
	if rec.SessionFee != "$180 per session" {
		t.Fatalf("sessionFee = %q", rec.SessionFee)
	}
	if len(rec.Languages) != 2 {
		t.Fatalf("languages = %v", rec.Languages)
	}
	if rec.Website != "https://janedoe.example.com" {
		t.Fatalf("website = %q", rec.Website)
	}
	if !rec.ScrapedAt.Equal(now) {
		t.Fatalf("scrapedAt = %v", rec.ScrapedAt)
	}
	if !rec.Sufficient() {
		t.Fatal("full profile should be sufficient")
	}
}

func TestExtractRecordSelectorFallbacks(t *testing.T) {
	rec := extractRecord(parseDoc(t, fallbackProfileHTML), "https://example.com/p", time.Now())

	if rec.Name != "John Smith" {
		t.Fatalf("name = %q", rec.Name)
	}
	if rec.AboutMe != "Twenty years of couples work." {
		t.Fatalf("aboutMe = %q, want class-based fallback to match", rec.AboutMe)
	}
	if len(rec.Specialties) != 3 {
		t.Fatalf("specialties = %v", rec.Specialties)
	}
	if !rec.Sufficient() {
		t.Fatal("fallback profile should be sufficient")
	}
}

func TestExtractRecordPhotoOnlyIsInsufficient(t *testing.T) {
	rec := extractRecord(parseDoc(t, photoOnlyHTML), "https://example.com/p", time.Now())

	if !rec.Empty() {
		t.Fatalf("photo-only record should be empty, got %+v", rec)
	}
	if rec.Sufficient() {
		t.Fatal("photo-only record must not be sufficient")
	}
}

func TestExtractRecordNameWithSpecialtiesButNoNarrative(t *testing.T) {
	html := `<html><body><h1>A. Name</h1><ul class="profile-specialties"><li>Anxiety</li></ul></body></html>`
	rec := extractRecord(parseDoc(t, html), "https://example.com/p", time.Now())

	if rec.Empty() {
		t.Fatal("record with a name is not empty")
	}
	if !rec.Sufficient() {
		t.Fatal("name plus specialties should be sufficient")
	}
}
