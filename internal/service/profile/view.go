package profile

import (
	"strings"

	"github.com/amoryapp/amory-backend/internal/db"
)

// View is the public shape of a profile: everything a counterpart may
// see, never credentials.
type View struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	City         string   `json:"city,omitempty"`
	Country      string   `json:"country,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Religion     string   `json:"religion,omitempty"`
	HasKids      bool     `json:"has_kids"`
	WantsKids    bool     `json:"wants_kids"`
	Ethnicities  []string `json:"ethnicities,omitempty"`
	Intents      []string `json:"intents,omitempty"`
	SubstanceUse []string `json:"substance_use,omitempty"`
	Images       []string `json:"images,omitempty"`
}

// NewView projects a stored user into its public shape. Image URLs keep
// their stored order; the first is the primary photo.
func NewView(u db.User) View {
	v := View{
		ID:           u.ID,
		Name:         u.Name,
		Age:          u.Age,
		City:         u.City,
		Country:      u.Country,
		Bio:          u.Bio,
		Religion:     u.Religion,
		HasKids:      u.HasKids,
		WantsKids:    u.WantsKids,
		Ethnicities:  splitTags(u.Ethnicities),
		Intents:      splitTags(u.Intents),
		SubstanceUse: splitTags(u.SubstanceUse),
	}
	for _, img := range u.Images {
		v.Images = append(v.Images, img.URL)
	}
	return v
}

func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
