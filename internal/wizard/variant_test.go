package wizard

import (
	"testing"

	"healthquote-funnel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantShape(t *testing.T) {
	assert.Equal(t, 7, Health().StepCount())
	assert.Equal(t, 5, Medicare().StepCount())

	var titles []string
	for _, s := range Health().Steps {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Get Started", "About You", "Household", "Life Events", "Health", "Location", "Contact"}, titles)

	titles = nil
	for _, s := range Medicare().Steps {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Get Started", "About You", "Coverage", "Location", "Contact"}, titles)
}

func TestDefaults(t *testing.T) {
	rec := Health().Defaults()
	assert.Equal(t, "", rec["zip"])
	assert.Equal(t, false, rec["is_self_employed"])
	assert.Equal(t, []string{}, rec["health_conditions"])
	assert.Equal(t, "101", rec["vertical_id"])
	assert.Len(t, rec, len(Health().FieldNames()))

	med := Medicare().Defaults()
	assert.Equal(t, "102", med["vertical_id"])
	_, hasIncome := med["household_income"]
	assert.False(t, hasIncome)

	// defaults are fresh copies
	rec["health_conditions"] = []string{"cancer"}
	assert.Equal(t, []string{}, Health().Defaults()["health_conditions"])
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, "/health-plan-form-m3/", Health().Route(3))
	assert.Equal(t, "/medicare-plan-form-m2/", Medicare().Route(2))

	tests := []struct {
		slug     string
		formType models.FormType
		step     int
		ok       bool
	}{
		{"health-plan-form-m1", models.FormTypeHealth, 1, true},
		{"/health-plan-form-m7/", models.FormTypeHealth, 7, true},
		{"health-plan-form-m8", "", 0, false},
		{"medicare-plan-form-m5", models.FormTypeMedicare, 5, true},
		{"medicare-plan-form-m6", "", 0, false},
		{"medicare-plan-form-m0", "", 0, false},
		{"health-plan-form-mx", "", 0, false},
		{"health-insurance", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			v, step, ok := ParseRoute(tt.slug)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, v)
				assert.Equal(t, tt.formType, v.FormType)
				assert.Equal(t, tt.step, step)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("medicare")
	require.True(t, ok)
	assert.Same(t, Medicare(), v)

	_, ok = Lookup("dental")
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	assert.Len(t, HealthConditions, 8)
	assert.Len(t, MajorLifeEvents, 10)
	assert.Len(t, MedicareCoverageTypes, 4)
	assert.Equal(t, "8+", HouseholdSizeOptions[7].Label)

	assert.Equal(t, []Option{
		{Value: "15075", Label: "$0 to $30,150"},
		{Value: "39194", Label: "$30,150 to $48,240"},
		{Value: "48240", Label: "$48,240 or more"},
	}, IncomeOptions("1"))
	assert.Equal(t, "134290", IncomeOptions("8")[1].Value)
	assert.Equal(t, IncomeOptions("1"), IncomeOptions(""))

	step, _ := Health().Step(2)
	years := step.Fields[2].Options(nil, fixedNow)
	assert.Equal(t, "2008", years[0].Value)
	assert.Equal(t, "1961", years[len(years)-1].Value)

	step, _ = Medicare().Step(2)
	years = step.Fields[2].Options(nil, fixedNow)
	assert.Equal(t, "1962", years[0].Value)
	assert.Equal(t, "1926", years[len(years)-1].Value)

	step, _ = Health().Step(3)
	income := step.Fields[1].Options(Record{"household_size": "4"}, fixedNow)
	assert.Equal(t, "30750", income[0].Value)
}

func TestParseFormValue(t *testing.T) {
	v, err := ParseFormValue(KindBool, []string{"on"})
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ParseFormValue(KindBool, nil)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, err = ParseFormValue(KindBool, []string{"maybe"})
	assert.Error(t, err)

	v, _ = ParseFormValue(KindList, []string{"cancer", "", " copd "})
	assert.Equal(t, []string{"cancer", "copd"}, v)

	v, _ = ParseFormValue(KindString, []string{" 02421 "})
	assert.Equal(t, "02421", v)
}
