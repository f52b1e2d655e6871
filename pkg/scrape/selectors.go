package scrape

// Profile pages change markup without notice, so every field carries an
// ordered list of selectors tried until one yields content. data-test
// attributes are the most stable and go first where they exist.

var nameSelectors = []string{
	"h1",
	".profile-name",
	`[data-test="provider-name"]`,
	".profile-heading h1",
}

var credentialsSelectors = []string{
	".profile-subtitle",
	`[data-test="provider-credentials"]`,
	".profile-credentials",
	"h2.profile-subtitle",
}

var locationSelectors = []string{
	".profile-location",
	`[data-test="provider-location"]`,
	".location-text",
}

var headlineSelectors = []string{
	`[data-test="provider-statement"]`,
	".statement-text",
	".profile-statement",
	`h2[class*="statement"]`,
	".profile-tagline",
}

var aboutMeSelectors = []string{
	`[data-test="about-me-text"]`,
	`[data-test="provider-bio"]`,
	"#about-me-text",
	".about-me-text",
	`[id*="bio"]`,
	`[class*="bio-text"]`,
	`section[class*="about"] p`,
	".profile-about",
}

var photoSelectors = []string{
	`[data-test="provider-image"]`,
	".profile-photo img",
	`img[alt*="photo"]`,
}

var specialtySelectors = []string{
	`[data-test="specialty-item"]`,
	`.attributes-list[data-test*="specialt"] li`,
	".profile-specialties li",
	`ul[class*="specialt"] li`,
}

var issueSelectors = []string{
	`[data-test="issue-item"]`,
	`.attributes-list[data-test*="issue"] li`,
	".profile-issues li",
	`ul[class*="issue"] li`,
}

var treatmentApproachSelectors = []string{
	`[data-test="treatment-orientation"]`,
	".treatment-orientation",
	`div[class*="treatment"]`,
}

var treatmentMethodSelectors = []string{
	`[data-test="modality-item"]`,
	`.attributes-list[data-test*="modalit"] li`,
	".profile-modalities li",
}

var clientFocusSelectors = []string{
	`[data-test="client-focus-item"]`,
	`.attributes-list[data-test*="demographic"] li`,
	".client-focus li",
}

var ageGroupSelectors = []string{
	`[data-test="age-group-item"]`,
	`.attributes-list[data-test*="age"] li`,
	".age-groups li",
}

var sessionTypeSelectors = []string{
	`[data-test="session-format-item"]`,
	`.attributes-list[data-test*="session"] li`,
	".session-types li",
}

var sessionFeeSelectors = []string{
	`[data-test="session-fee"]`,
	".session-fee",
	`div[class*="fee"]`,
}

var insuranceSelectors = []string{
	`[data-test="insurance-item"]`,
	`.attributes-list[data-test*="insurance"] li`,
	".insurance-list li",
}

var yearsExperienceSelectors = []string{
	`[data-test="years-in-practice"]`,
	".years-practice",
	`div[class*="experience"]`,
}

var licenseSelectors = []string{
	`[data-test="license-number"]`,
	".license-info",
	`div[class*="license"]`,
}

var educationSelectors = []string{
	`[data-test="education-item"]`,
	".education-list li",
	`ul[class*="education"] li`,
}

var languageSelectors = []string{
	`[data-test="language-item"]`,
	".languages-list li",
	`ul[class*="language"] li`,
}

var websiteSelectors = []string{
	`[data-test="website"]`,
	".profile-website a",
}
