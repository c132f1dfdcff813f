package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowboard-catalog-service/internal/store"
)

func TestResolver_NoConstraints_Unrestricted(t *testing.T) {
	fs := &fakeStore{}
	r := NewResolver(fs)

	set, restricted, err := r.Resolve(context.Background(), NewFilterState())

	require.NoError(t, err)
	assert.False(t, restricted, "no multi-row constraint must mean unrestricted, not empty")
	assert.Nil(t, set)
	assert.Equal(t, 0, fs.sizeCalls)
	assert.Equal(t, 0, fs.abilityCalls)
	assert.Equal(t, 0, fs.terrainCalls)
}

func TestResolver_IntersectsAllCategories(t *testing.T) {
	fs := &fakeStore{
		sizeIDs:    []int64{1, 2, 3},
		abilityIDs: []int64{2, 3, 4},
		terrainIDs: []int64{3, 4, 5},
	}
	r := NewResolver(fs)

	f := NewFilterState()
	f.Sizes.WideOnly = true
	f.AbilityLevelIDs = []int64{1}
	f.TerrainTypeIDs = []int64{1}

	set, restricted, err := r.Resolve(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, restricted)
	assert.Equal(t, []int64{3}, set.Slice())
}

func TestResolver_EmptySizeSet_ShortCircuits(t *testing.T) {
	fs := &fakeStore{
		sizeIDs:    []int64{},
		abilityIDs: []int64{1, 2},
	}
	r := NewResolver(fs)

	f := NewFilterState()
	f.Sizes.SizeMinCM = ptrTo(170.0)
	f.AbilityLevelIDs = []int64{1}
	f.TerrainTypeIDs = []int64{2}

	set, restricted, err := r.Resolve(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, restricted)
	assert.Empty(t, set)
	// The remaining lookups are skipped once the set is known empty.
	assert.Equal(t, 1, fs.sizeCalls)
	assert.Equal(t, 0, fs.abilityCalls)
	assert.Equal(t, 0, fs.terrainCalls)
}

func TestResolver_EmptyIntersection_ShortCircuits(t *testing.T) {
	fs := &fakeStore{
		abilityIDs: []int64{1, 2},
		terrainIDs: []int64{3, 4},
	}
	r := NewResolver(fs)

	f := NewFilterState()
	f.AbilityLevelIDs = []int64{1}
	f.TerrainTypeIDs = []int64{1}

	set, restricted, err := r.Resolve(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, restricted)
	assert.Empty(t, set)
}

func TestResolver_IntersectionOrderIndependent(t *testing.T) {
	f := NewFilterState()
	f.AbilityLevelIDs = []int64{1}
	f.TerrainTypeIDs = []int64{1}

	forward := &fakeStore{abilityIDs: []int64{1, 2, 5}, terrainIDs: []int64{2, 5, 9}}
	swapped := &fakeStore{abilityIDs: []int64{2, 5, 9}, terrainIDs: []int64{1, 2, 5}}

	setA, _, err := NewResolver(forward).Resolve(context.Background(), f)
	require.NoError(t, err)
	setB, _, err := NewResolver(swapped).Resolve(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, setA.Slice(), setB.Slice())
	assert.Equal(t, []int64{2, 5}, setA.Slice())
}

func TestResolver_StoreError_AbortsResolution(t *testing.T) {
	fs := &fakeStore{
		abilityErr: errors.New("connection reset"),
		terrainIDs: []int64{1},
	}
	r := NewResolver(fs)

	f := NewFilterState()
	f.AbilityLevelIDs = []int64{1}
	f.TerrainTypeIDs = []int64{1}

	set, restricted, err := r.Resolve(context.Background(), f)

	require.Error(t, err)
	assert.Nil(t, set)
	assert.False(t, restricted)
	// Nothing past the failing step runs; partial results are never used.
	assert.Equal(t, 0, fs.terrainCalls)
}

func TestSizeFilterConstrained(t *testing.T) {
	assert.False(t, store.SizeFilter{}.Constrained())
	assert.True(t, store.SizeFilter{WideOnly: true}.Constrained())
	assert.True(t, store.SizeFilter{SizeMinCM: ptrTo(150.0)}.Constrained())
	assert.True(t, store.SizeFilter{RiderWeightMaxLbs: ptrTo(200.0)}.Constrained())
}
