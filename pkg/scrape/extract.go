package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// extractRecord pulls a ProfileRecord out of rendered page HTML. It is pure:
// no network, no browser, just selector matching, which keeps it testable
// against static fixtures.
func extractRecord(doc *goquery.Document, profileURL string, now time.Time) domain.ProfileRecord {
	return domain.ProfileRecord{
		Name:              firstText(doc, nameSelectors),
		Credentials:       firstText(doc, credentialsSelectors),
		Location:          firstText(doc, locationSelectors),
		Headline:          firstText(doc, headlineSelectors),
		AboutMe:           firstText(doc, aboutMeSelectors),
		PhotoURL:          firstAttr(doc, photoSelectors, "src"),
		Specialties:       firstList(doc, specialtySelectors),
		Issues:            firstList(doc, issueSelectors),
		TreatmentApproach: firstText(doc, treatmentApproachSelectors),
		TreatmentMethods:  firstList(doc, treatmentMethodSelectors),
		ClientFocus:       firstList(doc, clientFocusSelectors),
		AgeGroups:         firstList(doc, ageGroupSelectors),
		SessionType:       firstList(doc, sessionTypeSelectors),
		SessionFee:        firstText(doc, sessionFeeSelectors),
		Insurance:         firstList(doc, insuranceSelectors),
		YearsExperience:   firstText(doc, yearsExperienceSelectors),
		LicenseNumber:     firstText(doc, licenseSelectors),
		Education:         firstList(doc, educationSelectors),
		Languages:         firstList(doc, languageSelectors),
		Website:           firstAttr(doc, websiteSelectors, "href"),
		ProfileURL:        profileURL,
		ScrapedAt:         now.UTC(),
	}
}

// firstText returns the trimmed text of the first selector that matches a
// non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// firstList returns all non-empty item texts of the first selector that
// matches anything.
func firstList(doc *goquery.Document, selectors []string) []string {
	for _, sel := range selectors {
		var items []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// firstAttr returns the named attribute of the first selector that carries it.
func firstAttr(doc *goquery.Document, selectors []string, attr string) string {
	for _, sel := range selectors {
		if val, ok := doc.Find(sel).First().Attr(attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
