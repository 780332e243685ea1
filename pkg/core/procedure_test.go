package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestAltitudeConstraint_String(t *testing.T) {
	tests := []struct {
		name string
		c    AltitudeConstraint
		want string
	}{
		{"empty", AltitudeConstraint{}, ""},
		{"at", AltitudeConstraint{Descriptor: "", Altitude1: intPtr(5000)}, "at 5000"},
		{"at or above", AltitudeConstraint{Descriptor: "+", Altitude1: intPtr(12000)}, "at or above 12000"},
		{"at or above FL", AltitudeConstraint{Descriptor: "+", Altitude1: intPtr(19000)}, "at or above FL190"},
		{"at or below", AltitudeConstraint{Descriptor: "-", Altitude1: intPtr(3000)}, "at or below 3000"},
		{"between", AltitudeConstraint{Descriptor: "B", Altitude1: intPtr(5000), Altitude2: intPtr(3000)}, "between 3000 and 5000"},
		{"between swapped", AltitudeConstraint{Descriptor: "b", Altitude1: intPtr(3000), Altitude2: intPtr(5000)}, "between 3000 and 5000"},
		{"between missing lower", AltitudeConstraint{Descriptor: "B", Altitude1: intPtr(3000)}, "at or below 3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.String())
		})
	}
}

func TestWaypoint_NormalizeDemotesUnpositioned(t *testing.T) {
	wp := Waypoint{FixID: "KEPEC", Resolved: true}
	wp.Normalize()
	assert.False(t, wp.Resolved)

	wp = Waypoint{FixID: "KEPEC", Resolved: true, Position: &LatLon{Latitude: 36.1, Longitude: -115.2}}
	wp.Normalize()
	assert.True(t, wp.Resolved)
}

func TestProcedure_ResolvedWaypoints(t *testing.T) {
	p := Procedure{
		Kind: ProcedureSTAR,
		Name: "KEPEC3",
		Waypoints: []Waypoint{
			{FixID: "A", Resolved: true, Position: &LatLon{Latitude: 1, Longitude: 1}},
			{FixID: "B"},
			{FixID: "C", Resolved: true, Position: &LatLon{Latitude: 2, Longitude: 2}},
		},
	}

	got := p.ResolvedWaypoints()
	if assert.Len(t, got, 2) {
		assert.Equal(t, "A", got[0].FixID)
		assert.Equal(t, "C", got[1].FixID)
	}
	assert.False(t, p.FullyResolved())

	p.Waypoints[1].Position = &LatLon{}
	p.Waypoints[1].Resolved = true
	assert.True(t, p.FullyResolved())
}

func TestProcedureKind_Valid(t *testing.T) {
	assert.True(t, ProcedureSID.Valid())
	assert.True(t, ProcedureSTAR.Valid())
	assert.True(t, ProcedureApproach.Valid())
	assert.False(t, ProcedureKind("VECTORS").Valid())
}

func TestProcedure_DisplayName(t *testing.T) {
	p := Procedure{Name: "RNAV (GPS) Y", Runway: "RW27", Transition: "KEPEC"}
	assert.Equal(t, "RNAV (GPS) Y RWY 27 (KEPEC)", p.DisplayName())

	p = Procedure{Name: "ILS RW27", Runway: "RW27"}
	assert.Equal(t, "ILS RW27", p.DisplayName())
}
