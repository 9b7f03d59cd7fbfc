package fill_test

import (
	"testing"

	"applypilot-engine/internal/fill"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		text string
		want fill.FieldKind
	}{
		{"email address", fill.FieldEmail},
		{"work e-mail", fill.FieldEmail},
		{"phone number", fill.FieldPhone},
		{"first name", fill.FieldFirstName},
		{"last name", fill.FieldLastName},
		{"full name", fill.FieldFullName},
		{"complete name", fill.FieldFullName},
		{"name", fill.FieldFullName},
		{"company name", fill.FieldCompany},
		{"username", fill.FieldGeneric},
		{"street address", fill.FieldAddress},
		{"zip code", fill.FieldZip},
		{"current salary expectation", fill.FieldSalary},
		{"linkedin profile", fill.FieldLinkedIn},
		{"are you authorized to work", fill.FieldWorkAuth},
		{"xyzzy", fill.FieldGeneric},
		{"", fill.FieldGeneric},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, fill.Classify(tc.text), "text=%q", tc.text)
	}
}

func TestClassifyOrderIsLoadBearing(t *testing.T) {
	// "first name" and "last name" both contain "name"; the narrower rules
	// must win over the fullName fallbacks.
	assert.Equal(t, fill.FieldFirstName, fill.Classify("applicant first name"))
	assert.Equal(t, fill.FieldLastName, fill.Classify("applicant last name"))

	// "email" beats "address" because the email rule is listed first.
	assert.Equal(t, fill.FieldEmail, fill.Classify("email address"))
}

func TestClassifierExtraRules(t *testing.T) {
	c := fill.NewClassifier(fill.Rule{
		Kind: fill.FieldKind("github"),
		Any:  []string{"github"},
	})

	// Extra rules run after the builtins, so they only catch what the
	// builtins missed.
	assert.Equal(t, fill.FieldKind("github"), c.Classify("github"))
	assert.Equal(t, fill.FieldWebsite, c.Classify("github profile url"))

	// A fresh classifier without the extra rule falls through to generic.
	assert.Equal(t, fill.FieldGeneric, fill.NewClassifier().Classify("github"))
}
