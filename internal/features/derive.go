// Package features implements feature derivation and schema alignment: the
// reconstruction, at inference time, of the engineered features the model
// was trained on, from the handful of fields a form can collect.
package features

import (
	"math"

	"github.com/finlab/credscore/internal/contracts"
)

// Engineered feature names produced by derivation. These must match the
// training artifact byte for byte; the schema is the authority on which of
// them the model actually consumes.
const (
	FeatIncome     = "AMT_INCOME_TOTAL"
	FeatCredit     = "AMT_CREDIT"
	FeatAnnuity    = "AMT_ANNUITY"
	FeatGoodsPrice = "AMT_GOODS_PRICE"

	FeatDaysBirth    = "DAYS_BIRTH"
	FeatDaysEmployed = "DAYS_EMPLOYED"

	FeatRegionRatingClient = "REGION_RATING_CLIENT"
	FeatRegionRatingWCity  = "REGION_RATING_CLIENT_W_CITY"

	FeatFlagPhone = "FLAG_PHONE"

	FeatExtSource1 = "EXT_SOURCE_1"
	FeatExtSource2 = "EXT_SOURCE_2"
	FeatExtSource3 = "EXT_SOURCE_3"

	FeatCreditToAnnuity   = "CREDIT_TO_ANNUITY_RATIO"
	FeatCreditToGoods     = "CREDIT_TO_GOODS_RATIO"
	FeatAgeYears          = "AGE_YEARS"
	FeatEmploymentYears   = "EMPLOYMENT_YEARS"
	FeatEmploymentToAge   = "EMPLOYMENT_TO_AGE_RATIO"
	FeatExtSourceMean     = "EXT_SOURCE_MEAN"
	FeatExtSourceStd      = "EXT_SOURCE_STD"
	FeatExtSourceMin      = "EXT_SOURCE_MIN"
	FeatExtSourceMax      = "EXT_SOURCE_MAX"
)

// One-hot flag groups. Only the enumerated category values carry a flag in
// the schema; any other selection leaves every flag in the group at 0. That
// is lossy by design — the training encoding dropped the rare categories —
// and must not be "fixed" here.
var flagGroups = []struct {
	prefix string
	values []string
}{
	{"NAME_EDUCATION_TYPE_", []string{contracts.EducationSecondary, contracts.EducationHigher}},
	{"NAME_FAMILY_STATUS_", []string{contracts.FamilyMarried, contracts.FamilySingle}},
	{"NAME_HOUSING_TYPE_", []string{contracts.HousingHouseApartment, contracts.HousingWithParents}},
	{"OCCUPATION_TYPE_", []string{contracts.OccupationCoreStaff, contracts.OccupationDrivers, contracts.OccupationLowSkillLaborer}},
	{"ORGANIZATION_TYPE_", []string{contracts.OrgBusinessEntityType3, contracts.OrgSelfEmployed, contracts.OrgXNA}},
	{"NAME_INCOME_TYPE_", []string{contracts.IncomeWorking, contracts.IncomeStateServant, contracts.IncomePensioner, contracts.IncomeCommercialAssociate}},
}

// Derive computes every feature that is deterministically derivable from
// the raw applicant record. Pure and total: invalid numeric inputs (zero or
// negative denominators) are defined via the zero-guard, never rejected.
//
// Denominator convention: ratios are x/y with a fallback of 0 when y <= 0.
// The batch pipeline's x/(y+1) variant is NOT used; the fitted imputer and
// scaler artifacts must have been generated against this same convention or
// model input parity silently breaks.
func Derive(raw *contracts.RawApplicant) map[string]float64 {
	d := make(map[string]float64, 48)

	// Direct numeric copies
	d[FeatIncome] = raw.Income
	d[FeatCredit] = raw.CreditAmount
	d[FeatAnnuity] = raw.Annuity
	d[FeatGoodsPrice] = raw.GoodsPrice
	d[FeatExtSource1] = raw.ExtSource1
	d[FeatExtSource2] = raw.ExtSource2
	d[FeatExtSource3] = raw.ExtSource3

	// Day-based fields are negative day counts in the source tables.
	d[FeatDaysBirth] = -raw.AgeYears * 365
	d[FeatDaysEmployed] = -raw.EmploymentYears * 365

	// Schema history keeps two region-rating slots; both take the same
	// raw input. Intentional duplication, not a bug to collapse.
	d[FeatRegionRatingClient] = raw.RegionRating
	d[FeatRegionRatingWCity] = raw.RegionRating

	d[FeatFlagPhone] = boolToFloat(raw.HasPhone)

	// Domain ratios
	d[FeatCreditToAnnuity] = safeRatio(raw.CreditAmount, raw.Annuity)
	d[FeatCreditToGoods] = safeRatio(raw.CreditAmount, raw.GoodsPrice)
	d[FeatAgeYears] = raw.AgeYears
	d[FeatEmploymentYears] = raw.EmploymentYears
	d[FeatEmploymentToAge] = safeRatio(raw.EmploymentYears, raw.AgeYears)

	// External source statistics
	ext := raw.ExtSources()
	d[FeatExtSourceMean] = mean(ext)
	d[FeatExtSourceStd] = sampleStd(ext)
	d[FeatExtSourceMin] = minOf(ext)
	d[FeatExtSourceMax] = maxOf(ext)

	// Categorical one-hot flags. Every enumerated flag is written, so that
	// alignment never median-fills a flag the applicant's selection already
	// decided.
	if raw.Gender == contracts.GenderMale {
		d["CODE_GENDER_M"] = 1
	} else {
		d["CODE_GENDER_M"] = 0
	}
	d["FLAG_OWN_CAR_Y"] = boolToFloat(raw.OwnCar)

	selections := map[string]string{
		"NAME_EDUCATION_TYPE_": raw.Education,
		"NAME_FAMILY_STATUS_":  raw.FamilyStatus,
		"NAME_HOUSING_TYPE_":   raw.HousingType,
		"OCCUPATION_TYPE_":     raw.Occupation,
		"ORGANIZATION_TYPE_":   raw.OrganizationType,
		"NAME_INCOME_TYPE_":    raw.IncomeType,
	}
	for _, group := range flagGroups {
		selected := selections[group.prefix]
		for _, value := range group.values {
			d[group.prefix+value] = boolToFloat(selected == value)
		}
	}

	return d
}

// safeRatio returns num/den with the documented zero-guard: 0 when the
// denominator is zero or negative.
func safeRatio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the sample standard deviation (ddof=1), matching the
// convention the fitted scaler and imputer were built against.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		diff := x - m
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return min
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return max
}
