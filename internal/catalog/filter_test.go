package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterState_CloneIsDeep(t *testing.T) {
	f := NewFilterState()
	f.BrandIDs = []int64{1, 2}
	f.Genders = []string{"MENS"}
	f.MSRPMax = ptrTo(500.0)
	f.Sizes.WaistWidthMinMM = ptrTo(250.0)

	c := f.Clone()
	c.BrandIDs[0] = 99
	c.Genders[0] = "KIDS"
	*c.MSRPMax = 100.0
	*c.Sizes.WaistWidthMinMM = 999.0
	c.Search = "changed"

	assert.Equal(t, []int64{1, 2}, f.BrandIDs)
	assert.Equal(t, []string{"MENS"}, f.Genders)
	assert.Equal(t, 500.0, *f.MSRPMax)
	assert.Equal(t, 250.0, *f.Sizes.WaistWidthMinMM)
	assert.Empty(t, f.Search)
}

func TestFilterState_ClonePreservesNilVsEmpty(t *testing.T) {
	f := NewFilterState()
	f.BrandIDs = []int64{}

	c := f.Clone()

	assert.NotNil(t, c.BrandIDs)
	assert.Empty(t, c.BrandIDs)
	assert.Nil(t, c.ProfileIDs)
	assert.Nil(t, c.MSRPMin)
}

func TestFilterState_FlexBounds(t *testing.T) {
	f := NewFilterState()
	min, max := f.flexBounds()
	assert.Nil(t, min, "the full scale constrains nothing")
	assert.Nil(t, max)

	f.FlexMin = 3.0
	min, max = f.flexBounds()
	assert.Equal(t, 3.0, *min)
	assert.Nil(t, max)

	f.FlexMax = 8.0
	min, max = f.flexBounds()
	assert.Equal(t, 3.0, *min)
	assert.Equal(t, 8.0, *max)
}

func TestIDSet_Intersect(t *testing.T) {
	a := NewIDSet([]int64{1, 2, 3, 4})
	b := NewIDSet([]int64{3, 4, 5})

	assert.Equal(t, []int64{3, 4}, a.Intersect(b).Slice())
	assert.Equal(t, []int64{3, 4}, b.Intersect(a).Slice())
	assert.Empty(t, a.Intersect(NewIDSet(nil)))
	assert.True(t, a.Contains(1))
	assert.False(t, a.Contains(5))
}

func TestIDSet_SliceSortedAndDeduplicated(t *testing.T) {
	s := NewIDSet([]int64{7, 1, 7, 3, 1})
	assert.Equal(t, []int64{1, 3, 7}, s.Slice())
}
