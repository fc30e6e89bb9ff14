// Package weather implements the point weather sample capability of spec
// component C5: a provider chain behind one TTL cache shared by the whole
// chain (there is no per-provider cache and no per-provider TTL), falling
// back to a deterministic synthetic sample when every provider fails, plus
// the Beaufort-like wave-height estimate and the wind-speed impact factor
// C6 uses for per-segment cost.
package weather

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/aquilax/go-perlin"
)

// Sample is a single point weather observation (spec §3 WeatherSample).
type Sample struct {
	WindSpeedKt    float64
	WindDirDeg     float64
	WaveHeightM    float64
	CurrentSpeedMS float64
	CurrentDirDeg  float64
	SST_C          float64
	SourceTag      string
}

// Provider is the capability the engine consumes for a single weather
// sample; implementations may call out to a network weather service.
// Service.Sample bounds each provider call to 5s by deriving a timeout
// context from the caller's ctx.
type Provider interface {
	Sample(ctx context.Context, lat, lon, forecastH float64) (Sample, error)
}

// cacheKey rounds a point to 2 decimal degrees, matching spec §4.5's
// cache granularity.
type cacheKey struct {
	lat float64
	lon float64
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

type cacheEntry struct {
	sample    Sample
	expiresAt time.Time
}

// Service chains providers in order, caches successful samples by rounded
// coordinate, and falls back to a deterministic synthetic sample when the
// whole chain fails.
type Service struct {
	providers []Provider
	ttl       time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry

	noise *perlin.Perlin
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the default cache TTL (10 minutes).
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// New builds a weather Service over an ordered provider chain. An empty
// chain is valid: every sample falls through to the synthetic fallback,
// which is still deterministic and idempotent per spec §8.
func New(providers []Provider, opts ...Option) *Service {
	s := &Service{
		providers: providers,
		ttl:       10 * time.Minute,
		cache:     make(map[cacheKey]cacheEntry),
		// alpha=2, beta=2, 3 octaves, fixed seed: matches the teacher's
		// watercolor paper-texture noise parameters, repurposed here for
		// deterministic spatial jitter instead of pixel texture.
		noise: perlin.NewPerlin(2.0, 2.0, 3, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns a weather sample for (lat, lon) at forecastH hours out.
// It never returns an error: provider failures are recovered inside the
// component boundary per spec §7 (WeatherUnavailable is never surfaced).
func (s *Service) Sample(ctx context.Context, lat, lon, forecastH float64) Sample {
	key := cacheKey{lat: roundTo(lat, 2), lon: roundTo(lon, 2)}

	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.sample
	}

	for _, p := range s.providers {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		sample, err := p.Sample(pctx, lat, lon, forecastH)
		cancel()
		if err != nil {
			continue
		}
		s.store(key, sample)
		return sample
	}

	sample := s.syntheticSample(lat, lon, forecastH)
	s.store(key, sample)
	return sample
}

func (s *Service) store(key cacheKey, sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{sample: sample, expiresAt: time.Now().Add(s.ttl)}
}

// syntheticSample builds a deterministic latitude-banded sample, jittered
// by 2D Perlin noise keyed on (lat, lon, forecastH) so repeated calls for
// the same point return the identical value (spec §8 idempotence) while
// neighboring points vary smoothly rather than discontinuously.
func (s *Service) syntheticSample(lat, lon, forecastH float64) Sample {
	latFactor := (lat + 60) / 120
	if latFactor < 0 {
		latFactor = 0
	}
	if latFactor > 1 {
		latFactor = 1
	}

	jitter := s.noise.Noise2D(lon/10, lat/10+forecastH/100)

	baseWind := 8 + latFactor*15
	windSpeed := math.Max(0, baseWind+jitter*3)

	waveHeight := math.Max(0.5, 1.0+latFactor*2+jitter*0.5)

	currentSpeed := math.Max(0, 0.3+latFactor*0.7+jitter*0.1)

	// A second, phase-shifted sample gives the direction fields
	// independent-looking but still deterministic variation.
	dirJitter := s.noise.Noise2D(lon/10+100, lat/10+forecastH/100)

	return Sample{
		WindSpeedKt:    windSpeed,
		WindDirDeg:     math.Mod((dirJitter+1)/2*360+360, 360),
		WaveHeightM:    waveHeight,
		CurrentSpeedMS: currentSpeed,
		CurrentDirDeg:  math.Mod((jitter+1)/2*360+360, 360),
		SST_C:          20 + latFactor*8,
		SourceTag:      "synthetic",
	}
}

// EstimateWaveHeightM estimates significant wave height in meters from
// wind speed in m/s via a piecewise Beaufort-like curve, used whenever a
// provider reports wind but not wave height directly.
func EstimateWaveHeightM(windSpeedMS float64) float64 {
	switch {
	case windSpeedMS < 2:
		return 0.1
	case windSpeedMS < 4:
		return 0.5
	case windSpeedMS < 7:
		return 1.0
	case windSpeedMS < 11:
		return 2.0
	case windSpeedMS < 16:
		return 3.0
	case windSpeedMS < 21:
		return 4.0
	default:
		return math.Min(windSpeedMS*0.2, 8.0)
	}
}

// WindFactor returns the C6 segment-cost wind impact factor:
// 1 + (wind_kt / 20) * 0.2.
func WindFactor(windSpeedKt float64) float64 {
	return 1 + (windSpeedKt/20)*0.2
}
