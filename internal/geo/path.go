package geo

import (
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/flightdeck/companion/pkg/core"
)

// ErrNotEnoughPoints is returned when a procedure has fewer than two legs
// with a known position.
var ErrNotEnoughPoints = errors.New("procedure needs at least 2 resolved waypoints")

// ProcedurePath returns the resolved legs of p as a web mercator line
// string, in flying order. Unresolved legs are skipped.
func ProcedurePath(p *core.Procedure) (geom.LineString, error) {
	if p == nil {
		return geom.LineString{}, ErrNotEnoughPoints
	}

	legs := p.ResolvedWaypoints()
	if len(legs) < 2 {
		return geom.LineString{}, fmt.Errorf("%s: %w (got %d)", p.Name, ErrNotEnoughPoints, len(legs))
	}

	flatCoords := make([]float64, 0, len(legs)*2)
	for _, wp := range legs {
		x, y, err := project(*wp.Position)
		if err != nil {
			return geom.LineString{}, fmt.Errorf("waypoint %s: %w", wp.FixID, err)
		}
		flatCoords = append(flatCoords, x, y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("%s: error creating linestring: %w", p.Name, err)
	}
	return ls, nil
}

// ProcedurePathWKT is ProcedurePath rendered as well-known text.
func ProcedurePathWKT(p *core.Procedure) (string, error) {
	ls, err := ProcedurePath(p)
	if err != nil {
		return "", err
	}
	return ls.AsText(), nil
}
