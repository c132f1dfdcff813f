package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"snowboard-catalog-service/internal/domain"
	"snowboard-catalog-service/internal/store"
)

var ErrFacetsNotLoaded = errors.New("catalog: facet catalog not initialized")

// FacetCatalog caches the six closed filter vocabularies for one session.
// Init loads them once; the loads are independent reads and run concurrently.
// After Init the catalog is read-only, so accessors need no locking beyond
// the loaded check.
type FacetCatalog struct {
	store store.FacetStorer

	mu     sync.Mutex
	loaded bool

	brands        []domain.Brand
	profiles      []domain.Profile
	shapes        []domain.Shape
	responseTypes []domain.ResponseType
	abilityLevels []domain.AbilityLevel
	terrainTypes  []domain.TerrainType

	brandNames        map[int64]string
	profileNames      map[int64]string
	shapeNames        map[int64]string
	responseTypeNames map[int64]string
}

func NewFacetCatalog(fs store.FacetStorer) *FacetCatalog {
	return &FacetCatalog{store: fs}
}

// Init loads all vocabularies. Calling it again after a successful load is a
// no-op; a failed load leaves the catalog unloaded and may be retried.
func (c *FacetCatalog) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	var wg sync.WaitGroup
	loadErrs := make([]error, 6)
	wg.Add(6)
	go func() { defer wg.Done(); c.brands, loadErrs[0] = c.store.ListBrands(ctx) }()
	go func() { defer wg.Done(); c.profiles, loadErrs[1] = c.store.ListProfiles(ctx) }()
	go func() { defer wg.Done(); c.shapes, loadErrs[2] = c.store.ListShapes(ctx) }()
	go func() { defer wg.Done(); c.responseTypes, loadErrs[3] = c.store.ListResponseTypes(ctx) }()
	go func() { defer wg.Done(); c.abilityLevels, loadErrs[4] = c.store.ListAbilityLevels(ctx) }()
	go func() { defer wg.Done(); c.terrainTypes, loadErrs[5] = c.store.ListTerrainTypes(ctx) }()
	wg.Wait()

	for _, err := range loadErrs {
		if err != nil {
			return fmt.Errorf("catalog: facet load failed: %w", err)
		}
	}

	c.brandNames = make(map[int64]string, len(c.brands))
	for _, b := range c.brands {
		c.brandNames[b.ID] = b.Name
	}
	c.profileNames = make(map[int64]string, len(c.profiles))
	for _, p := range c.profiles {
		c.profileNames[p.ID] = p.StandardName
	}
	c.shapeNames = make(map[int64]string, len(c.shapes))
	for _, sh := range c.shapes {
		c.shapeNames[sh.ID] = sh.StandardName
	}
	c.responseTypeNames = make(map[int64]string, len(c.responseTypes))
	for _, rt := range c.responseTypes {
		c.responseTypeNames[rt.ID] = rt.StandardName
	}

	c.loaded = true
	return nil
}

func (c *FacetCatalog) isLoaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Vocabulary accessors for rendering filter choices.

func (c *FacetCatalog) Brands() []domain.Brand               { return c.brands }
func (c *FacetCatalog) Profiles() []domain.Profile           { return c.profiles }
func (c *FacetCatalog) Shapes() []domain.Shape               { return c.shapes }
func (c *FacetCatalog) ResponseTypes() []domain.ResponseType { return c.responseTypes }
func (c *FacetCatalog) AbilityLevels() []domain.AbilityLevel { return c.abilityLevels }
func (c *FacetCatalog) TerrainTypes() []domain.TerrainType   { return c.terrainTypes }

// Translation from selected surrogate ids to the canonical names the
// denormalized view exposes. Ids not present in the vocabulary are skipped;
// selections always originate from the same cached vocabulary, so an unknown
// id only occurs if the caller fabricated one.

func translate(ids []int64, names map[int64]string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (c *FacetCatalog) BrandNames(ids []int64) []string   { return translate(ids, c.brandNames) }
func (c *FacetCatalog) ProfileNames(ids []int64) []string { return translate(ids, c.profileNames) }
func (c *FacetCatalog) ShapeNames(ids []int64) []string   { return translate(ids, c.shapeNames) }
func (c *FacetCatalog) ResponseTypeNames(ids []int64) []string {
	return translate(ids, c.responseTypeNames)
}
