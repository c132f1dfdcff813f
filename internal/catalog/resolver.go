package catalog

import (
	"context"
	"fmt"

	"snowboard-catalog-service/internal/store"
)

// Resolver computes, per multi-row facet category, the set of board_model
// ids satisfying that category's constraint, then intersects the sets. The
// categories live in different tables (board_size and the two junction
// tables), so each needs its own lookup before the main catalog query can
// apply the combined restriction.
type Resolver struct {
	store store.CatalogStorer
}

func NewResolver(cs store.CatalogStorer) *Resolver {
	return &Resolver{store: cs}
}

// Resolve returns (set, restricted, err). restricted=false means no
// multi-row category was constrained and the main query must run without an
// id filter; that is not the same as an empty computed set, which is a
// terminal "no results" signal. An empty set short-circuits: remaining
// lookups are skipped since the intersection can only stay empty.
func (r *Resolver) Resolve(ctx context.Context, applied FilterState) (IDSet, bool, error) {
	var result IDSet
	restricted := false

	merge := func(ids []int64) {
		set := NewIDSet(ids)
		if !restricted {
			result = set
			restricted = true
			return
		}
		result = result.Intersect(set)
	}

	if applied.Sizes.Constrained() {
		ids, err := r.store.BoardIDsMatchingSizes(ctx, applied.Sizes)
		if err != nil {
			return nil, false, fmt.Errorf("catalog: size candidate resolution failed: %w", err)
		}
		merge(ids)
		if len(result) == 0 {
			return result, true, nil
		}
	}

	if len(applied.AbilityLevelIDs) > 0 {
		ids, err := r.store.BoardIDsWithAbilityLevels(ctx, applied.AbilityLevelIDs)
		if err != nil {
			return nil, false, fmt.Errorf("catalog: ability level candidate resolution failed: %w", err)
		}
		merge(ids)
		if len(result) == 0 {
			return result, true, nil
		}
	}

	if len(applied.TerrainTypeIDs) > 0 {
		ids, err := r.store.BoardIDsWithTerrainTypes(ctx, applied.TerrainTypeIDs)
		if err != nil {
			return nil, false, fmt.Errorf("catalog: terrain type candidate resolution failed: %w", err)
		}
		merge(ids)
		if len(result) == 0 {
			return result, true, nil
		}
	}

	return result, restricted, nil
}
