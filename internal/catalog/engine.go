package catalog

import (
	"context"
	"strings"

	"snowboard-catalog-service/internal/domain"
	"snowboard-catalog-service/internal/store"
)

// DefaultPageSize is the fixed catalog page size.
const DefaultPageSize = 12

// Result is one resolved catalog page. TotalCount covers the whole filtered
// population, not just the returned page.
type Result struct {
	Boards     []domain.Board `json:"boards"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// Engine composes candidate-set resolution, the main catalog query and
// result projection into one read-only pipeline. It holds no filter state;
// the Browser (stateful, two-phase) and the HTTP layer (one-shot) both run
// their queries through it.
type Engine struct {
	store    store.CatalogStorer
	facets   *FacetCatalog
	resolver *Resolver
	pageSize int
}

func NewEngine(cs store.CatalogStorer, facets *FacetCatalog, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		store:    cs,
		facets:   facets,
		resolver: NewResolver(cs),
		pageSize: pageSize,
	}
}

func (e *Engine) PageSize() int { return e.pageSize }

// Query runs the full pipeline for one applied filter snapshot and page.
// The steps are strictly sequential: the main query needs the finished id
// restriction. An empty computed restriction short-circuits to a zero-row
// result without touching the store again; that is a legitimate outcome, not
// an error.
func (e *Engine) Query(ctx context.Context, applied FilterState, page int) (Result, error) {
	if page < 1 {
		page = 1
	}
	if !e.facets.isLoaded() {
		return Result{}, ErrFacetsNotLoaded
	}

	restriction, restricted, err := e.resolver.Resolve(ctx, applied)
	if err != nil {
		return Result{}, err
	}
	if restricted && len(restriction) == 0 {
		return Result{Boards: []domain.Board{}, TotalCount: 0, Page: page, TotalPages: 0}, nil
	}

	params := e.buildParams(applied, restriction, restricted, page)
	rows, totalCount, err := e.store.ListBoards(ctx, params)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Boards:     ProjectBoards(rows),
		TotalCount: totalCount,
		Page:       page,
		TotalPages: totalPages(totalCount, e.pageSize),
	}, nil
}

func (e *Engine) buildParams(applied FilterState, restriction IDSet, restricted bool, page int) store.ListBoardsParams {
	flexMin, flexMax := applied.flexBounds()
	params := store.ListBoardsParams{
		Search:            strings.TrimSpace(applied.Search),
		BrandNames:        e.facets.BrandNames(applied.BrandIDs),
		ModelYears:        applied.ModelYears,
		Genders:           applied.Genders,
		ProfileNames:      e.facets.ProfileNames(applied.ProfileIDs),
		ShapeNames:        e.facets.ShapeNames(applied.ShapeIDs),
		ResponseTypeNames: e.facets.ResponseTypeNames(applied.ResponseTypeIDs),
		FlexMin:           flexMin,
		FlexMax:           flexMax,
		MSRPMin:           applied.MSRPMin,
		MSRPMax:           applied.MSRPMax,
		Limit:             e.pageSize,
		Offset:            (page - 1) * e.pageSize,
	}
	if restricted {
		params.BoardIDs = restriction.Slice()
	}
	return params
}

func totalPages(totalCount, pageSize int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
