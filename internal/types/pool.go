package types

import "strings"

// PoolDetails holds the contact fields published in the pool-details contract
type PoolDetails struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Email       string `json:"email,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
	Discord     string `json:"discord,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	City        string `json:"city,omitempty"`
}

var poolSuffixes = []string{".poolv1.near", ".near"}

// LookupPool finds details by full account id first, then by the id with its
// pool suffix removed.
func LookupPool(details map[string]PoolDetails, accountID string) (PoolDetails, bool) {
	if d, ok := details[accountID]; ok {
		return d, true
	}
	for _, suffix := range poolSuffixes {
		if base, found := strings.CutSuffix(accountID, suffix); found {
			d, ok := details[base]
			return d, ok
		}
	}
	return PoolDetails{}, false
}
