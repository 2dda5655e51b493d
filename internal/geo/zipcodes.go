package geo

import "healthquote-funnel/internal/models"

// zipTable is a fixed sample of US ZIP codes. Unknown codes fall back to an area match on the
// first three digits, then to a state guess on the first digit.
var zipTable = map[string]models.Location{
	"02421": {City: "Lexington", State: "MA", StateLong: "Massachusetts"},
	"10001": {City: "New York", State: "NY", StateLong: "New York"},
	"90210": {City: "Beverly Hills", State: "CA", StateLong: "California"},
	"33101": {City: "Miami", State: "FL", StateLong: "Florida"},
	"60601": {City: "Chicago", State: "IL", StateLong: "Illinois"},
	"77001": {City: "Houston", State: "TX", StateLong: "Texas"},
	"85001": {City: "Phoenix", State: "AZ", StateLong: "Arizona"},
	"19101": {City: "Philadelphia", State: "PA", StateLong: "Pennsylvania"},
	"78201": {City: "San Antonio", State: "TX", StateLong: "Texas"},
	"92101": {City: "San Diego", State: "CA", StateLong: "California"},
	"75201": {City: "Dallas", State: "TX", StateLong: "Texas"},
	"95101": {City: "San Jose", State: "CA", StateLong: "California"},
	"78701": {City: "Austin", State: "TX", StateLong: "Texas"},
	"32099": {City: "Jacksonville", State: "FL", StateLong: "Florida"},
	"76101": {City: "Fort Worth", State: "TX", StateLong: "Texas"},
	"43085": {City: "Columbus", State: "OH", StateLong: "Ohio"},
	"28201": {City: "Charlotte", State: "NC", StateLong: "North Carolina"},
	"46201": {City: "Indianapolis", State: "IN", StateLong: "Indiana"},
	"98101": {City: "Seattle", State: "WA", StateLong: "Washington"},
	"80201": {City: "Denver", State: "CO", StateLong: "Colorado"},
	"20001": {City: "Washington", State: "DC", StateLong: "District of Columbia"},
	"02101": {City: "Boston", State: "MA", StateLong: "Massachusetts"},
	"37201": {City: "Nashville", State: "TN", StateLong: "Tennessee"},
	"21201": {City: "Baltimore", State: "MD", StateLong: "Maryland"},
	"73101": {City: "Oklahoma City", State: "OK", StateLong: "Oklahoma"},
	"40201": {City: "Louisville", State: "KY", StateLong: "Kentucky"},
	"97201": {City: "Portland", State: "OR", StateLong: "Oregon"},
	"89101": {City: "Las Vegas", State: "NV", StateLong: "Nevada"},
	"53201": {City: "Milwaukee", State: "WI", StateLong: "Wisconsin"},
	"87101": {City: "Albuquerque", State: "NM", StateLong: "New Mexico"},
	"85701": {City: "Tucson", State: "AZ", StateLong: "Arizona"},
	"93701": {City: "Fresno", State: "CA", StateLong: "California"},
	"95801": {City: "Sacramento", State: "CA", StateLong: "California"},
	"64101": {City: "Kansas City", State: "MO", StateLong: "Missouri"},
	"90801": {City: "Long Beach", State: "CA", StateLong: "California"},
	"85201": {City: "Mesa", State: "AZ", StateLong: "Arizona"},
	"30301": {City: "Atlanta", State: "GA", StateLong: "Georgia"},
	"80901": {City: "Colorado Springs", State: "CO", StateLong: "Colorado"},
	"27601": {City: "Raleigh", State: "NC", StateLong: "North Carolina"},
	"68101": {City: "Omaha", State: "NE", StateLong: "Nebraska"},
}

// stateByFirstDigit guesses a state from the ZIP's leading digit.
var stateByFirstDigit = map[byte]models.Location{
	'0': {State: "MA", StateLong: "Massachusetts"},
	'1': {State: "NY", StateLong: "New York"},
	'2': {State: "VA", StateLong: "Virginia"},
	'3': {State: "FL", StateLong: "Florida"},
	'4': {State: "MI", StateLong: "Michigan"},
	'5': {State: "MN", StateLong: "Minnesota"},
	'6': {State: "IL", StateLong: "Illinois"},
	'7': {State: "TX", StateLong: "Texas"},
	'8': {State: "CO", StateLong: "Colorado"},
	'9': {State: "CA", StateLong: "California"},
}

// areaIndex maps each three-digit prefix in zipTable to its entry. No two sample codes share
// a prefix.
var areaIndex = func() map[string]models.Location {
	idx := make(map[string]models.Location, len(zipTable))
	for zip, loc := range zipTable {
		idx[zip[:3]] = loc
	}
	return idx
}()
