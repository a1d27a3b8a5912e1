package classify

// Sentinel labels for descriptions no rule matches.
const (
	MerchantOther       = "OTHER"
	CategoryOther       = "Other"
	CategoryIncomeOther = "Income - Other"
)

// MerchantRule maps descriptions containing any of Contains to Label.
// Rules are evaluated in order; the first match wins, so overlapping
// patterns are resolved by position, not specificity.
type MerchantRule struct {
	Label    string   `yaml:"label"`
	Contains []string `yaml:"contains"`
}

// CategoryRule assigns Category when the extracted merchant is one of
// Merchants or the description contains any of Contains. Either list may
// be empty; at least one must not be.
type CategoryRule struct {
	Category  string   `yaml:"category"`
	Merchants []string `yaml:"merchants,omitempty"`
	Contains  []string `yaml:"contains,omitempty"`
}

// RuleSet is the full classification taxonomy: merchant extraction plus
// credit- and debit-side category assignment, all first-match-wins.
type RuleSet struct {
	Merchants        []MerchantRule `yaml:"merchants"`
	CreditCategories []CategoryRule `yaml:"credit_categories"`
	DebitCategories  []CategoryRule `yaml:"debit_categories"`
}

// DefaultRules returns the built-in taxonomy. The merchant list is long
// and order-sensitive: e.g. GOOGLE precedes AMAZON, so a description
// mentioning both is attributed to GOOGLE.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Merchants: []MerchantRule{
			{Label: "POONAM M", Contains: []string{"POONAM M"}},
			{Label: "AGI READ", Contains: []string{"AGI READ"}},
			{Label: "MOHIT S", Contains: []string{"MOHIT S"}},
			{Label: "JASVIN T", Contains: []string{"JASVIN T"}},
			{Label: "CHHAVI", Contains: []string{"CHHAVI"}},
			{Label: "GOOGLE", Contains: []string{"GOOGLE"}},
			{Label: "AARYAN", Contains: []string{"AARYAN"}},
			{Label: "ZEPTO", Contains: []string{"ZEPTO"}},
			{Label: "SWIGGY", Contains: []string{"SWIGGY"}},
			{Label: "AMAZON", Contains: []string{"AMAZON"}},
			{Label: "DOMINOS", Contains: []string{"DOMINO"}},
			{Label: "THAPAR INSTITUTE", Contains: []string{"THAPAR"}},
			{Label: "GROWW/INVESTMENTS", Contains: []string{"GROWW", "MUTUAL F"}},
			{Label: "AIRTEL", Contains: []string{"AIRTEL"}},
			{Label: "APPLE", Contains: []string{"APPLE"}},
			{Label: "NETFLIX", Contains: []string{"NETFLIX"}},
			{Label: "WRAP CHIP", Contains: []string{"WRAP CHIP"}},
			{Label: "HUNGERBOX", Contains: []string{"HUNGERBOX", "HUNGER BO X"}},
			{Label: "BLINKIT", Contains: []string{"BLINKIT"}},
			{Label: "ZUDIO", Contains: []string{"ZUDIO"}},
			{Label: "MCDONALDS", Contains: []string{"MCDONALDS", "MCDONALD"}},
			{Label: "GOIBIBO", Contains: []string{"GOIBIBO"}},
			{Label: "REBEL MARKET", Contains: []string{"REBEL"}},
			{Label: "MONU", Contains: []string{"MONU"}},
			{Label: "RAMESH K", Contains: []string{"RAMESH"}},
			{Label: "BINDER", Contains: []string{"BINDER"}},
			{Label: "ISHAN VOHRA", Contains: []string{"ISHAN"}},
			{Label: "AMIT KU", Contains: []string{"AMIT"}},
			{Label: "SHASHWAT", Contains: []string{"SHASHWAT"}},
			{Label: "JATINDER", Contains: []string{"JATINDER"}},
			{Label: "PUNIT PA", Contains: []string{"PUNIT"}},
			{Label: "UNIQUE S", Contains: []string{"UNIQUE"}},
			{Label: "GROWSY", Contains: []string{"GROWSY"}},
			{Label: "BESTIN", Contains: []string{"BESTIN"}},
			{Label: "M/S.SKY", Contains: []string{"SKY"}},
		},
		CreditCategories: []CategoryRule{
			{Category: "Income - Family", Merchants: []string{"POONAM M", "MOHIT S", "AGI READ"}},
			{Category: "Income - Friends/Peer Transfer", Merchants: []string{"JASVIN T", "AARYAN", "CHHAVI"}},
			{Category: "Income - Rewards", Merchants: []string{"GOOGLE"}},
			{Category: "Income - Refund", Contains: []string{"AMAZON"}},
		},
		DebitCategories: []CategoryRule{
			{Category: "Education", Contains: []string{"THAPAR"}},
			{Category: "Groceries", Contains: []string{"ZEPTO", "BLINKIT"}},
			{Category: "Food & Dining", Contains: []string{"SWIGGY", "DOMINO", "MCDONALDS", "HUNGERBOX", "WRAP CHIP"}},
			{Category: "Investments", Contains: []string{"GROWW", "MUTUAL F"}},
			{Category: "Shopping", Contains: []string{"AMAZON", "ZUDIO"}},
			{Category: "Subscriptions & Utilities", Contains: []string{"AIRTEL", "NETFLIX", "APPLE"}},
			{Category: "Travel", Contains: []string{"GOIBIBO"}},
			{Category: "Peer Transfers", Contains: []string{"MONU", "RAMESH", "BINDER", "ISHAN", "AMIT", "SHASHWAT", "JATINDER", "PUNIT"}},
			{Category: "Shopping - Local", Contains: []string{"REBEL", "UNIQUE", "GROWSY", "BESTIN", "SKY"}},
		},
	}
}
