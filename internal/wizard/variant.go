// Package wizard implements the multi-step quote form shared by the health insurance and
// Medicare funnels: per-step validation, session-backed form state, step navigation, arrival
// tracking and lead submission. Both funnels run through the same code, parameterized by a
// Variant.
package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"healthquote-funnel/internal/models"
)

// Control names how a field is rendered.
type Control string

const (
	ControlZip           Control = "zip"
	ControlText          Control = "text"
	ControlEmail         Control = "email"
	ControlPhone         Control = "phone"
	ControlSelect        Control = "select"
	ControlRadio         Control = "radio"
	ControlYesNo         Control = "yesno"
	ControlCheckbox      Control = "checkbox"
	ControlCheckboxGroup Control = "checkboxes"
)

// FieldSpec describes one input on a step.
type FieldSpec struct {
	Name        string
	Label       string
	Control     Control
	Placeholder string
	// ShowIf names a bool field that must be true for this input to show.
	ShowIf   string
	ReadOnly bool
	// Group ties inputs rendered together, such as the three parts of a date.
	Group string

	options   []Option
	optionsFn func(Record, time.Time) []Option
}

// Options returns the choices for the field given the current answers.
func (f FieldSpec) Options(rec Record, now time.Time) []Option {
	if f.optionsFn != nil {
		return f.optionsFn(rec, now)
	}
	return f.options
}

// Step is one page of a wizard.
type Step struct {
	Index    int
	Title    string
	Heading  string
	Subtitle string
	Fields   []FieldSpec

	validate func(Record, time.Time) ErrorMap
}

// Variant is the tagged configuration for one funnel.
type Variant struct {
	FormType    models.FormType
	RoutePrefix string
	Steps       []Step

	kinds    map[string]FieldKind
	order    []string
	defaults Record
}

func (v *Variant) StepCount() int {
	return len(v.Steps)
}

// Step returns step k, 1-based.
func (v *Variant) Step(k int) (*Step, bool) {
	if k < 1 || k > len(v.Steps) {
		return nil, false
	}
	return &v.Steps[k-1], true
}

// Route is the path for step k.
func (v *Variant) Route(k int) string {
	return fmt.Sprintf("/%s%d/", v.RoutePrefix, k)
}

// Kind reports the value shape of a field, and whether the variant has it.
func (v *Variant) Kind(name string) (FieldKind, bool) {
	k, ok := v.kinds[name]
	return k, ok
}

// FieldNames lists the record keys in declaration order.
func (v *Variant) FieldNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Defaults returns a fresh record with every field at its empty value.
func (v *Variant) Defaults() Record {
	return v.defaults.Clone()
}

// DataKey is the session cache key holding the record.
func (v *Variant) DataKey() string {
	return string(v.FormType) + "_form_data"
}

func (v *Variant) arrivalIDKey() string    { return string(v.FormType) + "_arrival_id" }
func (v *Variant) arrivalClaimKey() string { return string(v.FormType) + "_arrival_claim" }
func (v *Variant) submitLockKey() string   { return string(v.FormType) + "_submitting" }
func (v *Variant) trackingKey() string     { return string(v.FormType) + "_tracking_captured" }

type fieldDecl struct {
	name string
	kind FieldKind
}

var trackingFields = []fieldDecl{
	{"arrival_id", KindString},
	{"jornaya_id", KindString},
	{"campaign", KindString},
	{"term", KindString},
	{"vertical_id", KindString},
}

func newVariant(formType models.FormType, prefix string, fields []fieldDecl, steps []Step) *Variant {
	v := &Variant{
		FormType:    formType,
		RoutePrefix: prefix,
		Steps:       steps,
		kinds:       make(map[string]FieldKind),
		defaults:    make(Record),
	}
	for _, f := range append(fields, trackingFields...) {
		v.kinds[f.name] = f.kind
		v.order = append(v.order, f.name)
		switch f.kind {
		case KindBool:
			v.defaults[f.name] = false
		case KindList:
			v.defaults[f.name] = []string{}
		default:
			v.defaults[f.name] = ""
		}
	}
	v.defaults["vertical_id"] = formType.VerticalID()
	for i := range v.Steps {
		v.Steps[i].Index = i + 1
	}
	return v
}

func zipStep(product string) Step {
	return Step{
		Title:    "Get Started",
		Heading:  "Get Your Free " + product + " Quote",
		Subtitle: "Enter your ZIP code to see plans available in your area",
		Fields: []FieldSpec{
			{Name: "zip", Label: "ZIP Code", Control: ControlZip, Placeholder: "Enter ZIP code"},
		},
		validate: validateZipStep,
	}
}

func aboutYouStep(minAge, maxAge, ageFloor int) Step {
	return Step{
		Title:    "About You",
		Heading:  "About You",
		Subtitle: "Tell us about yourself",
		Fields: []FieldSpec{
			{Name: "birth_month", Label: "Month", Control: ControlSelect, Group: "Date of Birth", options: monthOptions},
			{Name: "birth_day", Label: "Day", Control: ControlSelect, Group: "Date of Birth", options: dayOptions},
			{Name: "birth_year", Label: "Year", Control: ControlSelect, Group: "Date of Birth", optionsFn: birthYears(minAge, maxAge)},
			{Name: "gender", Label: "Gender", Control: ControlRadio, options: GenderOptions},
		},
		validate: birthStepValidator(ageFloor),
	}
}

func locationStep() Step {
	return Step{
		Title:   "Location",
		Heading: "Your Location",
		Fields: []FieldSpec{
			{Name: "address", Label: "Street Address", Control: ControlText, Placeholder: "123 Main St"},
			{Name: "city", Label: "City", Control: ControlText, Placeholder: "City"},
			{Name: "state", Label: "State", Control: ControlText, Placeholder: "State"},
			{Name: "zip", Label: "ZIP Code", Control: ControlText, ReadOnly: true},
		},
		validate: validateAddressStep,
	}
}

func contactStep() Step {
	return Step{
		Title:    "Contact",
		Heading:  "Contact Information",
		Subtitle: "We'll send your personalized quotes to this information",
		Fields: []FieldSpec{
			{Name: "first_name", Label: "First Name", Control: ControlText, Placeholder: "First name"},
			{Name: "last_name", Label: "Last Name", Control: ControlText, Placeholder: "Last name"},
			{Name: "email", Label: "Email Address", Control: ControlEmail, Placeholder: "you@example.com"},
			{Name: "phone", Label: "Phone Number", Control: ControlPhone, Placeholder: "(555) 555-5555"},
		},
		validate: validateContactStep,
	}
}

var health = newVariant(models.FormTypeHealth, "health-plan-form-m",
	[]fieldDecl{
		{"zip", KindString},
		{"birth_month", KindString},
		{"birth_day", KindString},
		{"birth_year", KindString},
		{"gender", KindString},
		{"household_size", KindString},
		{"household_income", KindString},
		{"is_self_employed", KindBool},
		{"has_major_event", KindBool},
		{"major_life_event", KindString},
		{"event_month", KindString},
		{"event_day", KindString},
		{"event_year", KindString},
		{"have_conditions", KindBool},
		{"health_conditions", KindList},
		{"address", KindString},
		{"city", KindString},
		{"state", KindString},
		{"first_name", KindString},
		{"last_name", KindString},
		{"email", KindString},
		{"phone", KindString},
	},
	[]Step{
		zipStep("Health Insurance"),
		aboutYouStep(18, 65, 0),
		{
			Title:   "Household",
			Heading: "Household Information",
			Fields: []FieldSpec{
				{Name: "household_size", Label: "How many people are in your household?", Control: ControlSelect, Placeholder: "Select household size", options: HouseholdSizeOptions},
				{Name: "household_income", Label: "Expected annual household income", Control: ControlSelect, Placeholder: "Select income range", optionsFn: incomeFor},
				{Name: "is_self_employed", Label: "Are you self-employed?", Control: ControlCheckbox},
			},
			validate: validateHouseholdStep,
		},
		{
			Title:    "Life Events",
			Heading:  "Life Events",
			Subtitle: "Have you experienced any major life events in the past 60 days?",
			Fields: []FieldSpec{
				{Name: "has_major_event", Control: ControlYesNo, options: yesNoOptions},
				{Name: "major_life_event", Label: "What life event did you experience?", Control: ControlSelect, Placeholder: "Select life event", ShowIf: "has_major_event", options: MajorLifeEvents},
				{Name: "event_month", Label: "Month", Control: ControlSelect, ShowIf: "has_major_event", Group: "When did this event occur?", options: monthOptions},
				{Name: "event_day", Label: "Day", Control: ControlSelect, ShowIf: "has_major_event", Group: "When did this event occur?", options: dayOptions},
				{Name: "event_year", Label: "Year", Control: ControlSelect, ShowIf: "has_major_event", Group: "When did this event occur?", optionsFn: eventYears},
			},
			validate: validateLifeEventStep,
		},
		{
			Title:    "Health",
			Heading:  "Health Information",
			Subtitle: "Do you or anyone in your household have major health conditions?",
			Fields: []FieldSpec{
				{Name: "have_conditions", Control: ControlYesNo, options: yesNoOptions},
				{Name: "health_conditions", Label: "Select any conditions that apply", Control: ControlCheckboxGroup, ShowIf: "have_conditions", options: HealthConditions},
			},
		},
		locationStep(),
		contactStep(),
	},
)

var medicare = newVariant(models.FormTypeMedicare, "medicare-plan-form-m",
	[]fieldDecl{
		{"zip", KindString},
		{"birth_month", KindString},
		{"birth_day", KindString},
		{"birth_year", KindString},
		{"gender", KindString},
		{"interested_in", KindString},
		{"address", KindString},
		{"city", KindString},
		{"state", KindString},
		{"first_name", KindString},
		{"last_name", KindString},
		{"email", KindString},
		{"phone", KindString},
	},
	[]Step{
		zipStep("Medicare"),
		aboutYouStep(64, 100, MedicareMinimumAge),
		{
			Title:    "Coverage",
			Heading:  "Coverage Interest",
			Subtitle: "What type of Medicare coverage are you interested in?",
			Fields: []FieldSpec{
				{Name: "interested_in", Control: ControlRadio, options: MedicareCoverageTypes},
			},
			validate: validateCoverageStep,
		},
		locationStep(),
		contactStep(),
	},
)

// Health is the seven-step health insurance funnel.
func Health() *Variant { return health }

// Medicare is the five-step Medicare funnel.
func Medicare() *Variant { return medicare }

// Variants lists every funnel.
func Variants() []*Variant { return []*Variant{health, medicare} }

// Lookup finds a variant by form type.
func Lookup(formType string) (*Variant, bool) {
	switch models.FormType(formType) {
	case models.FormTypeHealth:
		return health, true
	case models.FormTypeMedicare:
		return medicare, true
	}
	return nil, false
}

var routePattern = regexp.MustCompile(`^(health-plan-form-m|medicare-plan-form-m)(\d+)$`)

// ParseRoute maps a path segment such as "health-plan-form-m3" to its variant and step. A
// step outside the variant's range is not a wizard route.
func ParseRoute(slug string) (*Variant, int, bool) {
	m := routePattern.FindStringSubmatch(strings.Trim(slug, "/"))
	if m == nil {
		return nil, 0, false
	}
	v := health
	if m[1] == medicare.RoutePrefix {
		v = medicare
	}
	step, err := strconv.Atoi(m[2])
	if err != nil || step < 1 || step > v.StepCount() {
		return nil, 0, false
	}
	return v, step, true
}
