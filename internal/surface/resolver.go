package surface

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Style is the pair of colours used to draw one surface polygon.
type Style struct {
	Fill    string
	Outline string
}

// Resolver memoises styles per code for the render loop, which asks for
// the same handful of codes once per polygon per frame.
type Resolver struct {
	cache *lru.Cache[int, Style]
}

// NewResolver creates a Resolver holding at most size styles.
func NewResolver(size int) (*Resolver, error) {
	if size <= 0 {
		size = len(fills) + 1
	}
	c, err := lru.New[int, Style](size)
	if err != nil {
		return nil, fmt.Errorf("creating style cache: %w", err)
	}
	return &Resolver{cache: c}, nil
}

// Style returns the fill and outline colours for code.
func (r *Resolver) Style(code int) Style {
	if s, ok := r.cache.Get(code); ok {
		return s
	}
	s := Style{Fill: FillColor(code), Outline: OutlineColor(code)}
	r.cache.Add(code, s)
	return s
}

// Len returns the number of cached styles.
func (r *Resolver) Len() int {
	return r.cache.Len()
}
