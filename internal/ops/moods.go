package ops

import "github.com/azriel91/tears/internal/catalog"

// MoodInfo describes one mood level for the reference listing.
type MoodInfo struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Symptoms    string `json:"symptoms"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// TrustInfo describes one trust level for the reference listing.
type TrustInfo struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// MoodsOutput contains the static mood and trust reference.
type MoodsOutput struct {
	Moods  []MoodInfo  `json:"moods"`
	Trusts []TrustInfo `json:"trusts"`
}

// Moods returns the mood scale and trust levels. No storage involved;
// the reference is compiled in.
func Moods() *MoodsOutput {
	moods := make([]MoodInfo, 0, len(catalog.Moods()))
	for _, m := range catalog.Moods() {
		moods = append(moods, MoodInfo{
			Rank:        m.Rank(),
			Name:        m.String(),
			Tag:         m.Tag(),
			Symptoms:    m.Symptoms(),
			Summary:     m.Summary(),
			Description: m.Description(),
		})
	}

	trusts := make([]TrustInfo, 0, len(catalog.Trusts()))
	for _, t := range catalog.Trusts() {
		trusts = append(trusts, TrustInfo{
			Name: t.String(),
			Tag:  t.Tag(),
		})
	}

	return &MoodsOutput{Moods: moods, Trusts: trusts}
}
