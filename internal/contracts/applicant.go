package contracts

// Categorical form choices. Values mirror the labels used when the training
// table was one-hot encoded, so derivation can match them exactly.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	EducationSecondary = "Secondary / secondary special"
	EducationHigher    = "Higher education"

	FamilyMarried = "Married"
	FamilySingle  = "Single / not married"

	HousingHouseApartment = "House / apartment"
	HousingWithParents    = "With parents"

	OccupationCoreStaff       = "Core staff"
	OccupationDrivers         = "Drivers"
	OccupationLowSkillLaborer = "Low-skill Laborers"

	OrgBusinessEntityType3 = "Business Entity Type 3"
	OrgSelfEmployed        = "Self-employed"
	OrgXNA                 = "XNA"

	IncomeWorking             = "Working"
	IncomeStateServant        = "State servant"
	IncomePensioner           = "Pensioner"
	IncomeCommercialAssociate = "Commercial associate"
)

// RawApplicant is the human-entered record for a single scoring request.
// Created per request, never persisted, never mutated after construction.
// Numeric range validation is the form's job; derivation is total over
// whatever lands here.
type RawApplicant struct {
	// Financial
	Income       float64 `json:"income"`
	CreditAmount float64 `json:"credit_amount"`
	Annuity      float64 `json:"annuity"`
	GoodsPrice   float64 `json:"goods_price"`

	// Personal
	AgeYears        float64 `json:"age_years"`
	EmploymentYears float64 `json:"employment_years"`
	RegionRating    float64 `json:"region_rating"`

	// External bureau scores, normalized to [0,1]
	ExtSource1 float64 `json:"ext_source_1"`
	ExtSource2 float64 `json:"ext_source_2"`
	ExtSource3 float64 `json:"ext_source_3"`

	// Categorical
	Gender           string `json:"gender"`
	Education        string `json:"education"`
	FamilyStatus     string `json:"family_status"`
	HousingType      string `json:"housing_type"`
	IncomeType       string `json:"income_type"`
	Occupation       string `json:"occupation"`
	OrganizationType string `json:"organization_type"`

	// Ownership flags
	OwnCar    bool `json:"own_car"`
	OwnRealty bool `json:"own_realty"`
	HasPhone  bool `json:"has_phone"`
}

// ExtSources returns the three bureau scores as a slice, in fixed order.
func (a *RawApplicant) ExtSources() []float64 {
	return []float64{a.ExtSource1, a.ExtSource2, a.ExtSource3}
}
