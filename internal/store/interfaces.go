package store

import (
	"context"

	"snowboard-catalog-service/internal/domain"
)

// SizeFilter holds the dimensional constraints applied against board_size
// rows. Every bound is optional; a nil bound means no constraint on that
// side. Min bounds compare inclusively (>=) against their column and max
// bounds compare inclusively (<=), with one deliberate exception: the rider
// weight pair uses range-overlap semantics (the variant's supported weight
// band must overlap the requested band), so RiderWeightMinLbs is compared
// against rider_weight_max_lbs and RiderWeightMaxLbs against
// rider_weight_min_lbs.
type SizeFilter struct {
	SizeMinCM          *float64
	SizeMaxCM          *float64
	EffectiveEdgeMinMM *float64
	EffectiveEdgeMaxMM *float64
	WaistWidthMinMM    *float64
	WaistWidthMaxMM    *float64
	TipWidthMinMM      *float64
	TipWidthMaxMM      *float64
	TailWidthMinMM     *float64
	TailWidthMaxMM     *float64
	SidecutRadiusMinM  *float64
	SidecutRadiusMaxM  *float64
	SidecutDepthMinMM  *float64
	SidecutDepthMaxMM  *float64
	MinStanceIn        *float64
	MaxStanceIn        *float64
	SetbackMinIn       *float64
	SetbackMaxIn       *float64
	InsertCountMin     *int
	InsertCountMax     *int
	RiderWeightMinLbs  *float64
	RiderWeightMaxLbs  *float64
	WideOnly           bool
}

// Constrained reports whether any bound (or the wide toggle) is set.
func (f SizeFilter) Constrained() bool {
	return f.WideOnly ||
		f.SizeMinCM != nil || f.SizeMaxCM != nil ||
		f.EffectiveEdgeMinMM != nil || f.EffectiveEdgeMaxMM != nil ||
		f.WaistWidthMinMM != nil || f.WaistWidthMaxMM != nil ||
		f.TipWidthMinMM != nil || f.TipWidthMaxMM != nil ||
		f.TailWidthMinMM != nil || f.TailWidthMaxMM != nil ||
		f.SidecutRadiusMinM != nil || f.SidecutRadiusMaxM != nil ||
		f.SidecutDepthMinMM != nil || f.SidecutDepthMaxMM != nil ||
		f.MinStanceIn != nil || f.MaxStanceIn != nil ||
		f.SetbackMinIn != nil || f.SetbackMaxIn != nil ||
		f.InsertCountMin != nil || f.InsertCountMax != nil ||
		f.RiderWeightMinLbs != nil || f.RiderWeightMaxLbs != nil
}

// ListBoardsParams holds every predicate for the paginated catalog query
// against the denormalized board_model_detail view. Facet selections arrive
// already translated from surrogate ids to canonical display names, since
// names are what the view exposes. Empty slices mean unconstrained.
type ListBoardsParams struct {
	BoardIDs          []int64 // inclusion restriction from candidate resolution; nil means unrestricted
	Search            string  // case-insensitive substring match on model_name
	BrandNames        []string
	ModelYears        []int
	Genders           []string
	ProfileNames      []string
	ShapeNames        []string
	ResponseTypeNames []string
	FlexMin           *float64
	FlexMax           *float64
	MSRPMin           *float64
	MSRPMax           *float64
	Limit             int
	Offset            int
}

// BoardRow is one flat row of the board_model_detail view. Facet names are
// nullable because ingestion may not have resolved every alias yet.
type BoardRow struct {
	ID               int64
	ModelName        string
	ModelYear        *int
	Gender           *string
	FlexRating       *float64
	MSRP             *float64
	ImageURL         *string
	BrandName        *string
	ProfileName      *string
	ShapeName        *string
	ResponseTypeName *string
}

// FacetStorer loads the closed facet vocabularies used to render filter
// choices and to translate selected ids into canonical names.
type FacetStorer interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	ListShapes(ctx context.Context) ([]domain.Shape, error)
	ListResponseTypes(ctx context.Context) ([]domain.ResponseType, error)
	ListAbilityLevels(ctx context.Context) ([]domain.AbilityLevel, error)
	ListTerrainTypes(ctx context.Context) ([]domain.TerrainType, error)
}

// CatalogStorer defines the read-only catalog queries.
type CatalogStorer interface {
	// ListBoards runs the paginated catalog query and returns the page rows
	// plus the exact total count of the filtered population.
	ListBoards(ctx context.Context, params ListBoardsParams) ([]BoardRow, int, error)
	GetBoardByID(ctx context.Context, id int64) (*BoardRow, error)
	ListBoardSizes(ctx context.Context, boardModelID int64) ([]domain.BoardSize, error)

	// Candidate-set lookups. Each returns the de-duplicated set of
	// board_model ids satisfying one facet category.
	BoardIDsMatchingSizes(ctx context.Context, filter SizeFilter) ([]int64, error)
	BoardIDsWithAbilityLevels(ctx context.Context, abilityLevelIDs []int64) ([]int64, error)
	BoardIDsWithTerrainTypes(ctx context.Context, terrainTypeIDs []int64) ([]int64, error)
}
