package fill

import "strings"

// FieldKind is the semantic category assigned to a field. It selects the
// generation instruction sent to the value oracle.
type FieldKind string

const (
	FieldEmail      FieldKind = "email"
	FieldPhone      FieldKind = "phone"
	FieldFirstName  FieldKind = "firstName"
	FieldLastName   FieldKind = "lastName"
	FieldFullName   FieldKind = "fullName"
	FieldAddress    FieldKind = "address"
	FieldCity       FieldKind = "city"
	FieldState      FieldKind = "state"
	FieldZip        FieldKind = "zipCode"
	FieldCountry    FieldKind = "country"
	FieldCompany    FieldKind = "company"
	FieldPosition   FieldKind = "position"
	FieldSalary     FieldKind = "salary"
	FieldEducation  FieldKind = "education"
	FieldSkills     FieldKind = "skills"
	FieldExperience FieldKind = "experience"
	FieldCoverLett  FieldKind = "coverLetter"
	FieldLinkedIn   FieldKind = "linkedin"
	FieldWebsite    FieldKind = "website"
	FieldDate       FieldKind = "date"
	FieldMotivation FieldKind = "motivation"
	FieldReference  FieldKind = "reference"
	FieldWorkAuth   FieldKind = "workAuthorization"
	FieldGeneric    FieldKind = "generic"
)

// Rule tests a field's signal text for keyword containment. All terms in All
// must appear, at least one of Any (when set) must appear, and nothing in
// None may appear.
type Rule struct {
	Kind FieldKind `yaml:"kind"`
	All  []string  `yaml:"all,omitempty"`
	Any  []string  `yaml:"any,omitempty"`
	None []string  `yaml:"none,omitempty"`
}

// builtinRules is an ordered list; the first matching rule wins. Ordering is
// load-bearing: firstName/lastName fire before the broader fullName rules,
// and company/position fire before generic terms that would collide.
var builtinRules = []Rule{
	{Kind: FieldEmail, Any: []string{"email", "e-mail"}},
	{Kind: FieldPhone, Any: []string{"phone", "tel", "mobile", "cell"}},
	{Kind: FieldFirstName, All: []string{"first", "name"}},
	{Kind: FieldLastName, All: []string{"last", "name"}},
	{Kind: FieldFullName, All: []string{"name"}, Any: []string{"full", "complete"}},
	{Kind: FieldFullName, All: []string{"name"}, None: []string{"company", "user"}},
	{Kind: FieldAddress, Any: []string{"address", "street", "location"}},
	{Kind: FieldCity, Any: []string{"city"}},
	{Kind: FieldState, Any: []string{"state", "province"}},
	{Kind: FieldZip, Any: []string{"zip", "postal"}},
	{Kind: FieldCountry, Any: []string{"country"}},
	{Kind: FieldCompany, Any: []string{"company", "employer", "organization"}},
	{Kind: FieldPosition, Any: []string{"position", "title", "job", "role"}},
	{Kind: FieldSalary, Any: []string{"salary", "compensation", "wage", "pay"}},
	{Kind: FieldEducation, Any: []string{"university", "school", "college", "education", "degree"}},
	{Kind: FieldSkills, Any: []string{"skill", "expertise", "proficient"}},
	{Kind: FieldExperience, Any: []string{"experience", "background"}},
	{Kind: FieldCoverLett, Any: []string{"cover", "letter", "summary", "objective", "about"}},
	{Kind: FieldLinkedIn, Any: []string{"linkedin"}},
	{Kind: FieldWebsite, Any: []string{"website", "portfolio", "url", "link"}},
	{Kind: FieldDate, Any: []string{"date", "when", "start", "end"}},
	{Kind: FieldMotivation, Any: []string{"why", "reason", "motivation", "interest"}},
	{Kind: FieldReference, Any: []string{"reference"}},
	{Kind: FieldWorkAuth, Any: []string{"citizen", "eligible", "authorized"}},
}

// Classifier maps signal text to a FieldKind. Extra rules from config are
// appended after the builtins, so they can only widen coverage, never
// reorder it.
type Classifier struct {
	rules []Rule
}

func NewClassifier(extra ...Rule) Classifier {
	rules := make([]Rule, 0, len(builtinRules)+len(extra))
	rules = append(rules, builtinRules...)
	rules = append(rules, extra...)
	return Classifier{rules: rules}
}

func (c Classifier) Classify(text string) FieldKind {
	rules := c.rules
	if rules == nil {
		rules = builtinRules
	}
	text = strings.ToLower(text)
	for _, r := range rules {
		if r.matches(text) {
			return r.Kind
		}
	}
	return FieldGeneric
}

// Classify runs the builtin rule table.
func Classify(text string) FieldKind {
	return Classifier{}.Classify(text)
}

func (r Rule) matches(text string) bool {
	for _, t := range r.All {
		if !strings.Contains(text, t) {
			return false
		}
	}
	if len(r.Any) > 0 {
		ok := false
		for _, t := range r.Any {
			if strings.Contains(text, t) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, t := range r.None {
		if strings.Contains(text, t) {
			return false
		}
	}
	return len(r.All) > 0 || len(r.Any) > 0
}
