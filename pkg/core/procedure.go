// pkg/core/procedure.go
package core

import (
	"fmt"
	"strings"
)

// ProcedureKind identifies the type of a terminal procedure.
type ProcedureKind string

const (
	ProcedureSID      ProcedureKind = "SID"
	ProcedureSTAR     ProcedureKind = "STAR"
	ProcedureApproach ProcedureKind = "APPROACH"
)

// Valid reports whether k is one of the known procedure kinds.
func (k ProcedureKind) Valid() bool {
	switch k {
	case ProcedureSID, ProcedureSTAR, ProcedureApproach:
		return true
	}
	return false
}

func (k ProcedureKind) String() string {
	return string(k)
}

// TurnDirection is the turn constraint on a leg; empty means none.
type TurnDirection string

const (
	TurnNone  TurnDirection = ""
	TurnLeft  TurnDirection = "left"
	TurnRight TurnDirection = "right"
)

// LatLon is a resolved geographic position in degrees.
type LatLon struct {
	Latitude  float64
	Longitude float64
}

// AltitudeConstraint is an ARINC-style altitude restriction. Descriptor
// follows the CIFP convention: "" or "@" at, "+" at or above, "-" at or
// below, "B" between.
type AltitudeConstraint struct {
	Descriptor string
	Altitude1  *int
	Altitude2  *int
}

// String returns a human readable form, e.g. "at or above FL120".
func (a AltitudeConstraint) String() string {
	if a.Altitude1 == nil {
		return ""
	}
	a1 := formatAltitude(*a.Altitude1)

	switch strings.ToUpper(a.Descriptor) {
	case "+":
		return "at or above " + a1
	case "-":
		return "at or below " + a1
	case "B":
		if a.Altitude2 == nil {
			return "at or below " + a1
		}
		lo, hi := *a.Altitude2, *a.Altitude1
		if lo > hi {
			lo, hi = hi, lo
		}
		return fmt.Sprintf("between %s and %s", formatAltitude(lo), formatAltitude(hi))
	default:
		return "at " + a1
	}
}

func formatAltitude(ft int) string {
	if ft >= 18000 && ft%100 == 0 {
		return fmt.Sprintf("FL%03d", ft/100)
	}
	return fmt.Sprintf("%d", ft)
}

// Waypoint is one leg of a procedure.
type Waypoint struct {
	FixID          string
	FixRegion      string
	FixType        string
	PathTerminator string
	Course         *float64
	Distance       *float64
	Altitude       *AltitudeConstraint
	Speed          *int
	Turn           TurnDirection

	// Position is filled in by the airport-data collaborator once the fix
	// has been looked up; Resolved must not be true without it.
	Position *LatLon
	Resolved bool
}

// Normalize demotes a waypoint that claims to be resolved but carries no
// position.
func (w *Waypoint) Normalize() {
	if w.Resolved && w.Position == nil {
		w.Resolved = false
	}
}

// Procedure is a named SID, STAR or approach.
type Procedure struct {
	Kind       ProcedureKind
	Name       string
	Runway     string
	Transition string
	Waypoints  []Waypoint
}

// Normalize applies Waypoint.Normalize to every leg.
func (p *Procedure) Normalize() {
	for i := range p.Waypoints {
		p.Waypoints[i].Normalize()
	}
}

// ResolvedWaypoints returns the legs with a known position, in order.
func (p *Procedure) ResolvedWaypoints() []Waypoint {
	var out []Waypoint
	for _, wp := range p.Waypoints {
		if wp.Resolved && wp.Position != nil {
			out = append(out, wp)
		}
	}
	return out
}

// FullyResolved reports whether every leg has a position.
func (p *Procedure) FullyResolved() bool {
	for _, wp := range p.Waypoints {
		if !wp.Resolved || wp.Position == nil {
			return false
		}
	}
	return true
}

// DisplayName joins name, transition and runway the way the sidebar lists
// procedures, e.g. "RNAV (GPS) Y RWY 27 (KEPEC)".
func (p *Procedure) DisplayName() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Runway != "" && !strings.Contains(p.Name, p.Runway) {
		b.WriteString(" RWY ")
		b.WriteString(strings.TrimPrefix(p.Runway, "RW"))
	}
	if p.Transition != "" {
		fmt.Fprintf(&b, " (%s)", p.Transition)
	}
	return b.String()
}
