package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) Sample(ctx context.Context, lat, lon, forecastH float64) (Sample, error) {
	return Sample{}, errors.New("unavailable")
}

type fixedProvider struct{ sample Sample }

func (f fixedProvider) Sample(ctx context.Context, lat, lon, forecastH float64) (Sample, error) {
	return f.sample, nil
}

func TestSampleFallsBackToSyntheticOnAllProvidersFailing(t *testing.T) {
	s := New([]Provider{failingProvider{}})
	sample := s.Sample(context.Background(), 10, 60, 0)
	assert.Equal(t, "synthetic", sample.SourceTag)
	assert.True(t, sample.WindSpeedKt >= 0)
}

func TestSampleIsIdempotentForSamePoint(t *testing.T) {
	s := New(nil)
	a := s.Sample(context.Background(), 10.001, 60.002, 0)
	b := s.Sample(context.Background(), 10.001, 60.002, 0)
	assert.Equal(t, a, b)
}

func TestSampleUsesFirstSuccessfulProvider(t *testing.T) {
	want := Sample{WindSpeedKt: 12, SourceTag: "test-provider"}
	s := New([]Provider{failingProvider{}, fixedProvider{sample: want}})
	got := s.Sample(context.Background(), 5, 70, 0)
	assert.Equal(t, want, got)
}

func TestCacheReturnsSameValueWithinTTL(t *testing.T) {
	calls := 0
	s := New([]Provider{countingProvider{count: &calls}})
	_ = s.Sample(context.Background(), 1, 1, 0)
	_ = s.Sample(context.Background(), 1, 1, 0)
	require.Equal(t, 1, calls)
}

type countingProvider struct{ count *int }

func (c countingProvider) Sample(ctx context.Context, lat, lon, forecastH float64) (Sample, error) {
	*c.count++
	return Sample{SourceTag: "counting"}, nil
}

func TestEstimateWaveHeightMPiecewise(t *testing.T) {
	assert.Equal(t, 0.1, EstimateWaveHeightM(1))
	assert.Equal(t, 1.0, EstimateWaveHeightM(5))
	assert.Equal(t, 4.0, EstimateWaveHeightM(18))
	assert.InDelta(t, 6.0, EstimateWaveHeightM(30), 1e-9)
}

func TestWindFactorIncreasesWithWind(t *testing.T) {
	low := WindFactor(5)
	high := WindFactor(30)
	assert.Less(t, low, high)
	assert.Equal(t, 1.0, WindFactor(0))
}
