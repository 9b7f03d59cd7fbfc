package oracle

import (
	"context"
	"fmt"
	"strings"

	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/textutil"
)

// SystemRole is fixed for this use case.
const SystemRole = "You are a helpful assistant that fills out job application forms. " +
	"Return only the requested value with no extra text, quotes, or explanations. " +
	"Be concise and professional."

// instructions maps each field kind to the request appended to the prompt.
var instructions = map[fill.FieldKind]string{
	fill.FieldEmail:      "the user's email address",
	fill.FieldPhone:      "the user's phone number in standard format",
	fill.FieldFirstName:  "only the user's first name",
	fill.FieldLastName:   "only the user's last name",
	fill.FieldFullName:   "the user's full name",
	fill.FieldAddress:    "the user's street address",
	fill.FieldCity:       "the user's city",
	fill.FieldState:      "the user's state or province",
	fill.FieldZip:        "the user's zip or postal code",
	fill.FieldCountry:    "the user's country",
	fill.FieldCompany:    "the user's current or most recent company name",
	fill.FieldPosition:   "the user's current job title or desired position",
	fill.FieldEducation:  "relevant education information (degree and school)",
	fill.FieldSkills:     "relevant skills for this field (comma-separated)",
	fill.FieldExperience: "brief professional experience summary",
	fill.FieldCoverLett:  "a brief professional response (2-3 sentences maximum)",
	fill.FieldLinkedIn:   "the user's LinkedIn profile URL",
	fill.FieldWebsite:    "the user's website or portfolio URL",
	fill.FieldSalary:     "an appropriate salary expectation based on the role",
	fill.FieldDate:       "an appropriate date in YYYY-MM-DD format",
	fill.FieldWorkAuth:   `"Yes" if the user is authorized to work, otherwise "No"`,
	fill.FieldMotivation: "a brief explanation of interest or motivation (1-2 sentences)",
}

// Generator implements fill.ValueSource on top of a Client.
type Generator struct {
	Client  Client
	Profile string // freeform user profile text
}

func (g *Generator) ValueFor(ctx context.Context, sig fill.Signature, pageContext string) (string, error) {
	resp, err := g.Client.Generate(ctx, valuePrompt(g.Profile, sig, pageContext))
	if err != nil {
		return "", err
	}
	return textutil.StripQuotes(resp), nil
}

func (g *Generator) ChoiceFor(ctx context.Context, sig fill.Signature, options []string, pageContext string) (string, error) {
	resp, err := g.Client.Generate(ctx, choicePrompt(g.Profile, sig, options, pageContext))
	if err != nil {
		return "", err
	}
	return textutil.StripQuotes(resp), nil
}

func valuePrompt(profile string, sig fill.Signature, pageContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Information:\n%s\n\n", profile)
	if pageContext != "" {
		fmt.Fprintf(&b, "Page Context: %s\n\n", pageContext)
	}
	fmt.Fprintf(&b, "Field Information:\nType: %s\nContext: %s\nPlaceholder: %s\nLabel: %s\n\nPlease provide ",
		sig.Kind, sig.Text, sig.Placeholder, sig.Label)

	if instr, ok := instructions[sig.Kind]; ok {
		b.WriteString(instr)
	} else {
		fmt.Fprintf(&b, "an appropriate response for this field based on the context: %s", sig.Text)
	}
	return b.String()
}

func choicePrompt(profile string, sig fill.Signature, options []string, pageContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Information: %s\n\n", profile)
	fmt.Fprintf(&b, "Select the best option from these choices: %s\n\n", strings.Join(options, ", "))
	fmt.Fprintf(&b, "Field context: %s\nJob context: %s\n\n", sig.Text, pageContext)
	b.WriteString("Respond with only the exact option text:")
	return b.String()
}
