package model

// VendorKeywords associates a vendor with the substrings that identify it.
type VendorKeywords struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// KeywordTable is the classification configuration. Vendors are evaluated in
// slice order and the first match wins. It is loaded once and never mutated.
type KeywordTable struct {
	Vendors    []VendorKeywords `yaml:"vendors" mapstructure:"vendors"`
	Exclusions []string         `yaml:"exclusions" mapstructure:"exclusions"`
}

// VendorNames returns the vendor names in evaluation order.
func (t *KeywordTable) VendorNames() []string {
	names := make([]string, len(t.Vendors))
	for i, v := range t.Vendors {
		names[i] = v.Name
	}
	return names
}

// DefaultKeywordTable returns the built-in vendor and exclusion keywords.
func DefaultKeywordTable() *KeywordTable {
	return &KeywordTable{
		Vendors: []VendorKeywords{
			{Name: "Google", Keywords: []string{"google", "google cloud certified"}},
			{Name: "IBM", Keywords: []string{"ibm", "ibm certified"}},
			{Name: "AWS", Keywords: []string{"aws", "aws certification"}},
			{Name: "Red Hat", Keywords: []string{"red hat", "red hat certified"}},
			{Name: "Liferay", Keywords: []string{"liferay", "liferay certified"}},
			{Name: "Delphix", Keywords: []string{"delphix"}},
			{Name: "Oracle", Keywords: []string{"oracle", "oracle certified"}},
		},
		Exclusions: []string{"alura", "udemy", "coursera", "curriculo", "currículo"},
	}
}
