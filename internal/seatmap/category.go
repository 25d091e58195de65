package seatmap

import "github.com/kirinyoku/boxoffice/internal/domain"

type SeatCategory = domain.SeatCategory

// Registry is the closed code -> category mapping of a screen. It is built
// once when the screen is loaded and never changes afterwards.
type Registry struct {
	byID map[string]SeatCategory
}

func NewRegistry(categories []SeatCategory) (*Registry, error) {
	r := &Registry{byID: make(map[string]SeatCategory, len(categories))}

	for _, c := range categories {
		if c.ID == "" {
			return nil, configErr("category with empty code")
		}
		if IsStructural(c.ID) {
			return nil, configErr("category code %q collides with a structural marker", c.ID)
		}
		if c.Price < 0 {
			return nil, configErr("category %q has negative price %d", c.ID, c.Price)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, configErr("duplicate category code %q", c.ID)
		}
		r.byID[c.ID] = c
	}

	return r, nil
}

func (r *Registry) Resolve(code string) (SeatCategory, bool) {
	c, ok := r.byID[code]
	return c, ok
}

func (r *Registry) Len() int {
	return len(r.byID)
}
