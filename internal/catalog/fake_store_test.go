package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"snowboard-catalog-service/internal/domain"
	"snowboard-catalog-service/internal/store"
)

// fakeStore implements store.FacetStorer and store.CatalogStorer in memory.
// ListBoards applies the same predicate semantics the real view query does,
// so engine and browser tests exercise real filtering, ordering and
// pagination behavior.
type fakeStore struct {
	mu sync.Mutex

	boards []store.BoardRow

	sizeIDs    []int64
	abilityIDs []int64
	terrainIDs []int64

	listErr    error
	sizeErr    error
	abilityErr error
	terrainErr error
	facetErr   error

	listCalls    []store.ListBoardsParams
	sizeCalls    int
	abilityCalls int
	terrainCalls int
	facetCalls   int

	// listHook, when set, runs before a ListBoards call is answered. Lets
	// tests block selected requests by inspecting their params.
	listHook func(params store.ListBoardsParams)
}

func ptrTo[T any](v T) *T { return &v }

func (f *fakeStore) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	f.mu.Lock()
	f.facetCalls++
	err := f.facetErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []domain.Brand{
		{ID: 1, Name: "Burton"},
		{ID: 2, Name: "RIDE"},
		{ID: 3, Name: "Lib Tech"},
	}, nil
}

func (f *fakeStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return []domain.Profile{
		{ID: 1, StandardName: "camber"},
		{ID: 2, StandardName: "rocker"},
		{ID: 3, StandardName: "hybrid_camber"},
	}, nil
}

func (f *fakeStore) ListShapes(ctx context.Context) ([]domain.Shape, error) {
	return []domain.Shape{
		{ID: 1, StandardName: "twin"},
		{ID: 2, StandardName: "directional"},
	}, nil
}

func (f *fakeStore) ListResponseTypes(ctx context.Context) ([]domain.ResponseType, error) {
	return []domain.ResponseType{
		{ID: 1, StandardName: "soft"},
		{ID: 2, StandardName: "medium"},
		{ID: 3, StandardName: "stiff"},
	}, nil
}

func (f *fakeStore) ListAbilityLevels(ctx context.Context) ([]domain.AbilityLevel, error) {
	return []domain.AbilityLevel{
		{ID: 1, Name: "Beginner", SortOrder: 1},
		{ID: 2, Name: "Intermediate", SortOrder: 2},
		{ID: 3, Name: "Advanced", SortOrder: 3},
		{ID: 4, Name: "Expert", SortOrder: 4},
	}, nil
}

func (f *fakeStore) ListTerrainTypes(ctx context.Context) ([]domain.TerrainType, error) {
	return []domain.TerrainType{
		{ID: 1, Name: "All-Mountain"},
		{ID: 2, Name: "Freestyle"},
		{ID: 3, Name: "Freeride"},
	}, nil
}

func (f *fakeStore) ListBoards(ctx context.Context, params store.ListBoardsParams) ([]store.BoardRow, int, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, params)
	hook := f.listHook
	err := f.listErr
	boards := f.boards
	f.mu.Unlock()

	if hook != nil {
		hook(params)
	}
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]store.BoardRow, 0, len(boards))
	for _, b := range boards {
		if rowMatches(b, params) {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].ModelName != filtered[j].ModelName {
			return filtered[i].ModelName < filtered[j].ModelName
		}
		return filtered[i].ID < filtered[j].ID
	})

	total := len(filtered)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	page := make([]store.BoardRow, end-start)
	copy(page, filtered[start:end])
	return page, total, nil
}

func rowMatches(b store.BoardRow, params store.ListBoardsParams) bool {
	if params.BoardIDs != nil {
		found := false
		for _, id := range params.BoardIDs {
			if id == b.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		if !strings.Contains(strings.ToLower(b.ModelName), strings.ToLower(s)) {
			return false
		}
	}
	if !matchesStr(b.BrandName, params.BrandNames) {
		return false
	}
	if len(params.ModelYears) > 0 {
		if b.ModelYear == nil {
			return false
		}
		found := false
		for _, y := range params.ModelYears {
			if y == *b.ModelYear {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !matchesStr(b.Gender, params.Genders) {
		return false
	}
	if !matchesStr(b.ProfileName, params.ProfileNames) {
		return false
	}
	if !matchesStr(b.ShapeName, params.ShapeNames) {
		return false
	}
	if !matchesStr(b.ResponseTypeName, params.ResponseTypeNames) {
		return false
	}
	if params.FlexMin != nil && (b.FlexRating == nil || *b.FlexRating < *params.FlexMin) {
		return false
	}
	if params.FlexMax != nil && (b.FlexRating == nil || *b.FlexRating > *params.FlexMax) {
		return false
	}
	if params.MSRPMin != nil && (b.MSRP == nil || *b.MSRP < *params.MSRPMin) {
		return false
	}
	if params.MSRPMax != nil && (b.MSRP == nil || *b.MSRP > *params.MSRPMax) {
		return false
	}
	return true
}

func matchesStr(value *string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	for _, s := range selected {
		if s == *value {
			return true
		}
	}
	return false
}

func (f *fakeStore) GetBoardByID(ctx context.Context, id int64) (*store.BoardRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.boards {
		if b.ID == id {
			row := b
			return &row, nil
		}
	}
	return nil, store.ErrBoardNotFound
}

func (f *fakeStore) ListBoardSizes(ctx context.Context, boardModelID int64) ([]domain.BoardSize, error) {
	return []domain.BoardSize{}, nil
}

func (f *fakeStore) BoardIDsMatchingSizes(ctx context.Context, filter store.SizeFilter) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizeCalls++
	if f.sizeErr != nil {
		return nil, f.sizeErr
	}
	if !filter.Constrained() {
		return nil, nil
	}
	return append([]int64(nil), f.sizeIDs...), nil
}

func (f *fakeStore) BoardIDsWithAbilityLevels(ctx context.Context, abilityLevelIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abilityCalls++
	if f.abilityErr != nil {
		return nil, f.abilityErr
	}
	return append([]int64(nil), f.abilityIDs...), nil
}

func (f *fakeStore) BoardIDsWithTerrainTypes(ctx context.Context, terrainTypeIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terrainCalls++
	if f.terrainErr != nil {
		return nil, f.terrainErr
	}
	return append([]int64(nil), f.terrainIDs...), nil
}

func (f *fakeStore) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func (f *fakeStore) lastListCall() store.ListBoardsParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[len(f.listCalls)-1]
}

// sampleBoards is a small population covering several brands, prices and
// facet names.
func sampleBoards() []store.BoardRow {
	return []store.BoardRow{
		{ID: 1, ModelName: "Custom Camber", ModelYear: ptrTo(2025), Gender: ptrTo("MENS"),
			FlexRating: ptrTo(6.0), MSRP: ptrTo(150.0), BrandName: ptrTo("Burton"),
			ProfileName: ptrTo("camber"), ShapeName: ptrTo("twin"), ResponseTypeName: ptrTo("medium")},
		{ID: 2, ModelName: "Warpig", ModelYear: ptrTo(2025), Gender: ptrTo("UNISEX"),
			FlexRating: ptrTo(5.0), MSRP: ptrTo(300.0), BrandName: ptrTo("RIDE"),
			ProfileName: ptrTo("hybrid_camber"), ShapeName: ptrTo("directional"), ResponseTypeName: ptrTo("medium")},
		{ID: 3, ModelName: "Orca", ModelYear: ptrTo(2024), Gender: ptrTo("MENS"),
			FlexRating: ptrTo(7.0), MSRP: ptrTo(600.0), BrandName: ptrTo("Lib Tech"),
			ProfileName: ptrTo("rocker"), ShapeName: ptrTo("directional"), ResponseTypeName: ptrTo("stiff")},
	}
}

// manyBoards builds n boards with ascending names and ids for pagination
// tests.
func manyBoards(n int) []store.BoardRow {
	boards := make([]store.BoardRow, 0, n)
	for i := 0; i < n; i++ {
		boards = append(boards, store.BoardRow{
			ID: int64(i + 1),
			// Zero-padded so lexicographic name order matches id order.
			ModelName: "Board " + string(rune('A'+i/26)) + string(rune('A'+i%26)),
			BrandName: ptrTo("Burton"),
		})
	}
	return boards
}

func newLoadedFacets(ctx context.Context, fs *fakeStore) (*FacetCatalog, error) {
	facets := NewFacetCatalog(fs)
	if err := facets.Init(ctx); err != nil {
		return nil, err
	}
	return facets, nil
}
