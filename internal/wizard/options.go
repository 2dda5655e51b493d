package wizard

import (
	"fmt"
	"strconv"
	"time"
)

// Option is one choice in a select, radio or checkbox group.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var GenderOptions = []Option{
	{Value: "male", Label: "Male"},
	{Value: "female", Label: "Female"},
}

var HouseholdSizeOptions = []Option{
	{Value: "1", Label: "1"},
	{Value: "2", Label: "2"},
	{Value: "3", Label: "3"},
	{Value: "4", Label: "4"},
	{Value: "5", Label: "5"},
	{Value: "6", Label: "6"},
	{Value: "7", Label: "7"},
	{Value: "8", Label: "8+"},
}

var HealthConditions = []Option{
	{Value: "diabetes", Label: "Diabetes"},
	{Value: "heart_disease", Label: "Heart Disease"},
	{Value: "cancer", Label: "Cancer"},
	{Value: "copd", Label: "COPD/Lung Disease"},
	{Value: "depression", Label: "Depression/Anxiety"},
	{Value: "high_blood_pressure", Label: "High Blood Pressure"},
	{Value: "obesity", Label: "Obesity"},
	{Value: "arthritis", Label: "Arthritis"},
}

var MajorLifeEvents = []Option{
	{Value: "lost_coverage", Label: "Lost health coverage"},
	{Value: "moved", Label: "Moved to a new state"},
	{Value: "married", Label: "Got married"},
	{Value: "divorced", Label: "Got divorced"},
	{Value: "had_baby", Label: "Had a baby"},
	{Value: "adopted", Label: "Adopted a child"},
	{Value: "lost_medicaid", Label: "Lost Medicaid/CHIP"},
	{Value: "turned_26", Label: "Turned 26"},
	{Value: "released_incarceration", Label: "Released from incarceration"},
	{Value: "citizenship", Label: "Gained citizenship"},
}

var MedicareCoverageTypes = []Option{
	{Value: "medicare_advantage", Label: "Medicare Advantage"},
	{Value: "medicare_supplement", Label: "Medicare Supplement (Medigap)"},
	{Value: "prescription_drug", Label: "Prescription Drug Plan (Part D)"},
	{Value: "not_sure", Label: "Not Sure - Help Me Decide"},
}

var yesNoOptions = []Option{
	{Value: "true", Label: "Yes"},
	{Value: "false", Label: "No"},
}

// householdIncome holds three brackets per household size. Values are the bracket midpoints
// the lead service expects.
var householdIncome = map[int][]Option{
	1: {{"15075", "$0 to $30,150"}, {"39194", "$30,150 to $48,240"}, {"48240", "$48,240 or more"}},
	2: {{"20300", "$0 to $40,600"}, {"52780", "$40,600 to $64,960"}, {"64960", "$64,960 or more"}},
	3: {{"25525", "$0 to $51,050"}, {"66364", "$51,050 to $81,680"}, {"81680", "$81,680 or more"}},
	4: {{"30750", "$0 to $61,500"}, {"79950", "$61,500 to $98,400"}, {"98400", "$98,400 or more"}},
	5: {{"35975", "$0 to $71,950"}, {"93534", "$71,950 to $115,120"}, {"115120", "$115,120 or more"}},
	6: {{"41200", "$0 to $82,400"}, {"107120", "$82,400 to $131,840"}, {"131840", "$131,840 or more"}},
	7: {{"46425", "$0 to $92,850"}, {"120704", "$92,850 to $148,560"}, {"148560", "$148,560 or more"}},
	8: {{"51650", "$0 to $103,300"}, {"134290", "$103,300 to $165,280"}, {"165280", "$165,280 or more"}},
}

// IncomeOptions returns the brackets for a household size. An unparsable size falls back to
// a household of one.
func IncomeOptions(householdSize string) []Option {
	size, err := strconv.Atoi(householdSize)
	if err != nil || size < 1 {
		size = 1
	}
	opts, ok := householdIncome[size]
	if !ok {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

// yearRange lists years from newest to oldest, as the date pickers show them.
func yearRange(from, to int) []Option {
	out := make([]Option, 0, to-from+1)
	for y := to; y >= from; y-- {
		s := strconv.Itoa(y)
		out = append(out, Option{Value: s, Label: s})
	}
	return out
}

func numberRange(n int) []Option {
	out := make([]Option, 0, n)
	for i := 1; i <= n; i++ {
		s := fmt.Sprintf("%02d", i)
		out = append(out, Option{Value: s, Label: s})
	}
	return out
}

var (
	monthOptions = numberRange(12)
	dayOptions   = numberRange(31)
)

func birthYears(minAge, maxAge int) func(Record, time.Time) []Option {
	return func(_ Record, now time.Time) []Option {
		return yearRange(now.Year()-maxAge, now.Year()-minAge)
	}
}

func eventYears(_ Record, now time.Time) []Option {
	return yearRange(now.Year()-1, now.Year())
}

func incomeFor(rec Record, _ time.Time) []Option {
	return IncomeOptions(rec.String("household_size"))
}

// LabelFor returns the label of value in opts, or value itself when it is not listed.
func LabelFor(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
