// internal/common/leadservice/demo.go

package leadservice

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"healthquote-funnel/internal/models"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID builds ids of the form <prefix>_<base36 unix millis>_<8 base36 chars>.
func newID(prefix string, now time.Time) string {
	suffix := make([]byte, 8)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("%s_%s_%s", prefix, strconv.FormatInt(now.UnixMilli(), 36), suffix)
}

func f(v float64) *float64 { return &v }

// DemoOffers returns the placeholder offers shown while no ad feed is connected.
func DemoOffers(formType models.FormType) []models.Offer {
	if formType == models.FormTypeMedicare {
		return []models.Offer{
			{
				ID:       "1",
				Company:  "AARP Medicare",
				PlanName: "AARP Medicare Advantage",
				LogoURL:  "/uploads/2020/03/aarp-logo.png",
				ClickURL: "#",
				Headline: "Medicare Advantage Plans Starting at $0",
				DescriptionLines: []string{
					"$0 monthly premium options",
					"Prescription drug coverage",
					"Dental, vision, and hearing",
					"Fitness programs included",
				},
				AdType: "click",
			},
			{
				ID:       "2",
				Company:  "Humana",
				PlanName: "Humana Medicare Advantage",
				LogoURL:  "/uploads/2020/03/humana-logo.png",
				ClickURL: "#",
				Headline: "All-in-One Medicare Coverage",
				DescriptionLines: []string{
					"Hospital and medical coverage",
					"Part D drug coverage",
					"24/7 nurse advice line",
					"Virtual doctor visits",
				},
				AdType: "click",
			},
			{
				ID:       "3",
				Company:  "UnitedHealthcare",
				PlanName: "AARP Medicare Complete",
				LogoURL:  "/uploads/2020/03/uhc-logo.png",
				ClickURL: "#",
				Headline: "Comprehensive Medicare Plans",
				DescriptionLines: []string{
					"Low out-of-pocket costs",
					"Large provider network",
					"Wellness programs",
					"Preventive care covered",
				},
				AdType: "click",
			},
		}
	}

	return []models.Offer{
		{
			ID:       "1",
			Company:  "Blue Cross Blue Shield",
			PlanName: "BCBS Silver Plan",
			LogoURL:  "/uploads/2020/03/bcbs-logo.png",
			ClickURL: "#",
			Headline: "Affordable Health Coverage",
			DescriptionLines: []string{
				"$2,500 Deductible",
				"20% Coinsurance",
				"$6,500 Out of Pocket Max",
				"Preventive care covered 100%",
			},
			MonthlyCost:           f(285),
			Deductible:            f(2500),
			CoinsurancePercentage: f(20),
			OutOfPocketMax:        f(6500),
			AdType:                "click",
		},
		{
			ID:       "2",
			Company:  "Aetna",
			PlanName: "Aetna CVS Health Silver",
			LogoURL:  "/uploads/2020/03/aetna-logo.png",
			ClickURL: "#",
			Headline: "Quality Care, Fair Prices",
			DescriptionLines: []string{
				"$3,000 Deductible",
				"30% Coinsurance",
				"$7,350 Out of Pocket Max",
				"Nationwide network",
			},
			MonthlyCost:           f(245),
			Deductible:            f(3000),
			CoinsurancePercentage: f(30),
			OutOfPocketMax:        f(7350),
			AdType:                "click",
		},
		{
			ID:       "3",
			Company:  "Cigna",
			PlanName: "Cigna Connect Silver",
			LogoURL:  "/uploads/2020/03/cigna-logo.png",
			ClickURL: "#",
			Headline: "Connected Care for You",
			DescriptionLines: []string{
				"$2,000 Deductible",
				"25% Coinsurance",
				"$6,000 Out of Pocket Max",
				"Virtual care included",
			},
			MonthlyCost:           f(310),
			Deductible:            f(2000),
			CoinsurancePercentage: f(25),
			OutOfPocketMax:        f(6000),
			AdType:                "click",
		},
		{
			ID:       "4",
			Company:  "Kaiser Permanente",
			PlanName: "Kaiser Silver 70",
			LogoURL:  "/uploads/2020/03/kaiser-logo.png",
			ClickURL: "#",
			Headline: "Integrated Care Excellence",
			DescriptionLines: []string{
				"$2,750 Deductible",
				"30% Coinsurance",
				"$7,000 Out of Pocket Max",
				"Mental health coverage",
			},
			MonthlyCost:           f(265),
			Deductible:            f(2750),
			CoinsurancePercentage: f(30),
			OutOfPocketMax:        f(7000),
			AdType:                "click",
		},
	}
}
