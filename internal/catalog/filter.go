package catalog

import (
	"snowboard-catalog-service/internal/store"
)

// Flex ratings live on a closed 1-10 scale. A filter spanning the whole
// scale constrains nothing and is suppressed before query building.
const (
	FlexRatingMin = 1.0
	FlexRatingMax = 10.0
)

// FilterState is the user's filter selection. It is a plain value object:
// the browser keeps a pending copy (edited freely by the presentation layer)
// and an applied copy (the one queries run against). Facet selections are
// surrogate ids from the facet vocabularies; they are translated to canonical
// names at query time. An empty slice means unconstrained, never
// "match nothing". A nil numeric bound means no constraint on that side.
type FilterState struct {
	BrandIDs        []int64
	ModelYears      []int
	Genders         []string
	ProfileIDs      []int64
	ShapeIDs        []int64
	ResponseTypeIDs []int64
	AbilityLevelIDs []int64
	TerrainTypeIDs  []int64

	// FlexMin/FlexMax default to the full 1-10 scale, which counts as
	// unconstrained.
	FlexMin float64
	FlexMax float64

	MSRPMin *float64
	MSRPMax *float64

	// Sizes carries the per-dimension bounds plus the wide-only toggle,
	// all operating at board_size granularity.
	Sizes store.SizeFilter

	// Search is matched case-insensitively as a substring of model_name.
	Search string
}

// NewFilterState returns the all-unconstrained default selection.
func NewFilterState() FilterState {
	return FilterState{
		FlexMin: FlexRatingMin,
		FlexMax: FlexRatingMax,
	}
}

// flexBounds returns the flex predicate bounds, or nils when the selection
// spans the whole scale.
func (f FilterState) flexBounds() (min, max *float64) {
	if f.FlexMin > FlexRatingMin {
		v := f.FlexMin
		min = &v
	}
	if f.FlexMax < FlexRatingMax {
		v := f.FlexMax
		max = &v
	}
	return min, max
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneSizeFilter(f store.SizeFilter) store.SizeFilter {
	return store.SizeFilter{
		SizeMinCM:          clonePtr(f.SizeMinCM),
		SizeMaxCM:          clonePtr(f.SizeMaxCM),
		EffectiveEdgeMinMM: clonePtr(f.EffectiveEdgeMinMM),
		EffectiveEdgeMaxMM: clonePtr(f.EffectiveEdgeMaxMM),
		WaistWidthMinMM:    clonePtr(f.WaistWidthMinMM),
		WaistWidthMaxMM:    clonePtr(f.WaistWidthMaxMM),
		TipWidthMinMM:      clonePtr(f.TipWidthMinMM),
		TipWidthMaxMM:      clonePtr(f.TipWidthMaxMM),
		TailWidthMinMM:     clonePtr(f.TailWidthMinMM),
		TailWidthMaxMM:     clonePtr(f.TailWidthMaxMM),
		SidecutRadiusMinM:  clonePtr(f.SidecutRadiusMinM),
		SidecutRadiusMaxM:  clonePtr(f.SidecutRadiusMaxM),
		SidecutDepthMinMM:  clonePtr(f.SidecutDepthMinMM),
		SidecutDepthMaxMM:  clonePtr(f.SidecutDepthMaxMM),
		MinStanceIn:        clonePtr(f.MinStanceIn),
		MaxStanceIn:        clonePtr(f.MaxStanceIn),
		SetbackMinIn:       clonePtr(f.SetbackMinIn),
		SetbackMaxIn:       clonePtr(f.SetbackMaxIn),
		InsertCountMin:     clonePtr(f.InsertCountMin),
		InsertCountMax:     clonePtr(f.InsertCountMax),
		RiderWeightMinLbs:  clonePtr(f.RiderWeightMinLbs),
		RiderWeightMaxLbs:  clonePtr(f.RiderWeightMaxLbs),
		WideOnly:           f.WideOnly,
	}
}

// Clone deep-copies the filter so a committed snapshot cannot be mutated by
// later edits to the pending copy.
func (f FilterState) Clone() FilterState {
	c := f
	c.BrandIDs = cloneSlice(f.BrandIDs)
	c.ModelYears = cloneSlice(f.ModelYears)
	c.Genders = cloneSlice(f.Genders)
	c.ProfileIDs = cloneSlice(f.ProfileIDs)
	c.ShapeIDs = cloneSlice(f.ShapeIDs)
	c.ResponseTypeIDs = cloneSlice(f.ResponseTypeIDs)
	c.AbilityLevelIDs = cloneSlice(f.AbilityLevelIDs)
	c.TerrainTypeIDs = cloneSlice(f.TerrainTypeIDs)
	c.MSRPMin = clonePtr(f.MSRPMin)
	c.MSRPMax = clonePtr(f.MSRPMax)
	c.Sizes = cloneSizeFilter(f.Sizes)
	return c
}
