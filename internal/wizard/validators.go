package wizard

import (
	"strconv"
	"time"

	"healthquote-funnel/internal/common/validation"
)

// MedicareMinimumAge is the youngest age the Medicare funnel accepts.
const MedicareMinimumAge = 64

const (
	msgZip         = "Please enter a valid 5-digit ZIP code"
	msgRequired    = "Required"
	msgGender      = "Please select your gender"
	msgLifeEvent   = "Please select the life event"
	msgCoverage    = "Please select a coverage type"
	msgAddress     = "Address is required"
	msgFirstName   = "First name is required"
	msgLastName    = "Last name is required"
	msgEmail       = "Valid email is required"
	msgPhone       = "Valid phone number is required"
	msgMedicareAge = "You must be 64 or older for Medicare"
)

// ValidateStep checks only the fields step k owns. An empty map means the step passes.
func (v *Variant) ValidateStep(rec Record, k int, now time.Time) ErrorMap {
	step, ok := v.Step(k)
	if !ok || step.validate == nil {
		return ErrorMap{}
	}
	return step.validate(rec, now)
}

func validateZipStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	if len(rec.String("zip")) != 5 {
		errs["zip"] = msgZip
	}
	return errs
}

func birthStepValidator(ageFloor int) func(Record, time.Time) ErrorMap {
	return func(rec Record, now time.Time) ErrorMap {
		errs := ErrorMap{}
		requireAll(rec, errs, msgRequired, "birth_month", "birth_day", "birth_year")
		if rec.String("gender") == "" {
			errs["gender"] = msgGender
		}
		if ageFloor > 0 && rec.String("birth_year") != "" {
			// a year that does not parse gets no age verdict; the select only offers numbers
			year, err := strconv.Atoi(rec.String("birth_year"))
			if err == nil && now.Year()-year < ageFloor {
				errs["birth_year"] = msgMedicareAge
			}
		}
		return errs
	}
}

func validateHouseholdStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	requireAll(rec, errs, msgRequired, "household_size", "household_income")
	return errs
}

func validateLifeEventStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	if rec.Bool("has_major_event") && rec.String("major_life_event") == "" {
		errs["major_life_event"] = msgLifeEvent
	}
	return errs
}

func validateCoverageStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	if rec.String("interested_in") == "" {
		errs["interested_in"] = msgCoverage
	}
	return errs
}

func validateAddressStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	if rec.String("address") == "" {
		errs["address"] = msgAddress
	}
	return errs
}

func validateContactStep(rec Record, _ time.Time) ErrorMap {
	errs := ErrorMap{}
	if rec.String("first_name") == "" {
		errs["first_name"] = msgFirstName
	}
	if rec.String("last_name") == "" {
		errs["last_name"] = msgLastName
	}
	if email := rec.String("email"); email == "" || !validation.ValidateEmail(email) {
		errs["email"] = msgEmail
	}
	if phone := rec.String("phone"); phone == "" || !validation.ValidatePhone(phone) {
		errs["phone"] = msgPhone
	}
	return errs
}

func requireAll(rec Record, errs ErrorMap, msg string, names ...string) {
	for _, name := range names {
		if rec.String(name) == "" {
			errs[name] = msg
		}
	}
}
