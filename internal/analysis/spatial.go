package analysis

import (
	"math/rand"

	"github.com/golang/geo/s2"
)

// SampleLocations draws a uniformly random without-replacement subsample of
// the geocoded rows, size min(cap, geocoded rows). The same table and seed
// always produce the identical sample: selection is a partial Fisher-Yates
// shuffle over the row indices with a seeded source. Returns nil when the
// table has no coordinate columns.
func SampleLocations(t *Table, sampleCap int, seed int64) SpatialSampleView {
	if !t.HasGeo {
		return nil
	}

	idx := make([]int, 0, len(t.Records))
	for i := range t.Records {
		if t.Records[i].HasCoordinates() {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return SpatialSampleView{}
	}

	if sampleCap > 0 && len(idx) > sampleCap {
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < sampleCap; i++ {
			j := i + rng.Intn(len(idx)-i)
			idx[i], idx[j] = idx[j], idx[i]
		}
		idx = idx[:sampleCap]
	}

	sample := make(SpatialSampleView, len(idx))
	for i, row := range idx {
		sample[i] = Point{
			Lat: t.Records[row].Latitude.Float64,
			Lng: t.Records[row].Longitude.Float64,
		}
	}
	return sample
}

// BinDensity aggregates a spatial sample into a size x size grid of
// occurrence counts over the sample's bounding box. Only non-zero cells are
// materialized. Returns nil for an empty sample.
func BinDensity(sample SpatialSampleView, size int) *DensityGridView {
	if len(sample) == 0 || size <= 0 {
		return nil
	}

	rect := s2.EmptyRect()
	for _, p := range sample {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Lng))
	}

	lo, hi := rect.Lo(), rect.Hi()
	latLo, latHi := lo.Lat.Degrees(), hi.Lat.Degrees()
	lngLo, lngHi := lo.Lng.Degrees(), hi.Lng.Degrees()
	latSpan := latHi - latLo
	lngSpan := lngHi - lngLo

	grid := &DensityGridView{
		Bounds: rect,
		Size:   size,
		Cells:  make(map[GridCell]int),
	}
	for _, p := range sample {
		grid.Cells[GridCell{
			X: binIndex(p.Lng, lngLo, lngSpan, size),
			Y: binIndex(p.Lat, latLo, latSpan, size),
		}]++
	}
	return grid
}

func binIndex(v, lo, span float64, size int) int {
	if span <= 0 {
		return 0
	}
	i := int((v - lo) / span * float64(size))
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
