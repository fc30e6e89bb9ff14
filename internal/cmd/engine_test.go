package cmd

import (
	"testing"

	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVesselAcceptsKnownType(t *testing.T) {
	vt, err := parseVessel("container_10000")
	require.NoError(t, err)
	assert.Equal(t, voyage.Container10000TEU, vt)
}

func TestParseVesselRejectsUnknownType(t *testing.T) {
	_, err := parseVessel("not_a_real_vessel")
	require.Error(t, err)
}

func TestParseCoordinateList(t *testing.T) {
	coords, err := parseCoordinateList([]string{"10.5,65.25", " -3.1, 40 "})
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assert.Equal(t, 10.5, coords[0].Lat)
	assert.Equal(t, 65.25, coords[0].Lon)
	assert.Equal(t, -3.1, coords[1].Lat)
	assert.Equal(t, 40.0, coords[1].Lon)
}

func TestParseCoordinateListRejectsMalformedEntry(t *testing.T) {
	_, err := parseCoordinateList([]string{"10.5"})
	require.Error(t, err)
}

func TestBuildOrchestratorIsUsable(t *testing.T) {
	o := buildOrchestrator()
	require.NotNil(t, o)
}
