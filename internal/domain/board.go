package domain

// Facet vocabularies. These are closed lookup tables owned by the ingestion
// pipeline; the catalog only ever reads them. Brand, profile, shape and
// response type are single-valued per board; ability levels and terrain types
// relate many-to-many.

// Brand represents a snowboard manufacturer.
type Brand struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	WebsiteURL *string `json:"website_url,omitempty"`
}

// Profile is a camber/rocker profile (e.g. "camber", "hybrid_rocker").
type Profile struct {
	ID           int64   `json:"id"`
	StandardName string  `json:"standard_name"`
	Description  *string `json:"description,omitempty"`
}

// Shape is a board outline shape (e.g. "twin", "directional").
type Shape struct {
	ID           int64   `json:"id"`
	StandardName string  `json:"standard_name"`
	Description  *string `json:"description,omitempty"`
}

// ResponseType describes board response/stiffness character (e.g. "playful").
type ResponseType struct {
	ID           int64   `json:"id"`
	StandardName string  `json:"standard_name"`
	Description  *string `json:"description,omitempty"`
}

// AbilityLevel is a rider skill tier. SortOrder controls display order
// (Beginner before Expert), not alphabetical.
type AbilityLevel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// TerrainType is a terrain specialty (e.g. "All-Mountain", "Freestyle").
type TerrainType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BoardBrand is the nested brand shape in catalog results. The denormalized
// view exposes only the canonical name, so no surrogate id is carried here;
// consumers identify boards by the top-level Board.ID only.
type BoardBrand struct {
	Name string `json:"name"`
}

// BoardFacet is the nested shape for profile/shape/response type in results.
type BoardFacet struct {
	StandardName string `json:"standard_name"`
}

// Board is the display shape for one catalog row, projected from the
// denormalized board_model_detail view.
type Board struct {
	ID           int64      `json:"id"`
	ModelName    string     `json:"model_name"`
	ModelYear    *int       `json:"model_year,omitempty"`
	FlexRating   *float64   `json:"flex_rating,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	MSRP         *float64   `json:"msrp,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	Brand        BoardBrand `json:"brand"`
	Profile      BoardFacet `json:"profile"`
	Shape        BoardFacet `json:"shape"`
	ResponseType BoardFacet `json:"response_type"`
}

// BoardSize is one size/length option of a board model. All dimensional
// filters operate at this granularity and are projected back up to the
// owning board model.
type BoardSize struct {
	ID                  int64    `json:"id"`
	BoardModelID        int64    `json:"board_model_id"`
	SizeCM              float64  `json:"size_cm"`
	Wide                bool     `json:"wide"`
	EffectiveEdgeMM     *float64 `json:"effective_edge_mm,omitempty"`
	WaistWidthMM        *float64 `json:"waist_width_mm,omitempty"`
	TipWidthMM          *float64 `json:"tip_width_mm,omitempty"`
	TailWidthMM         *float64 `json:"tail_width_mm,omitempty"`
	RunningLengthMM     *float64 `json:"running_length_mm,omitempty"`
	SidecutRadiusM      *float64 `json:"sidecut_radius_m,omitempty"`
	SidecutDepthMM      *float64 `json:"sidecut_depth_mm,omitempty"`
	ReferenceStanceIn   *float64 `json:"reference_stance_in,omitempty"`
	MinStanceIn         *float64 `json:"min_stance_in,omitempty"`
	MaxStanceIn         *float64 `json:"max_stance_in,omitempty"`
	SetbackIn           *float64 `json:"setback_in,omitempty"`
	InsertCount         *int     `json:"insert_count,omitempty"`
	RiderWeightMinLbs   *float64 `json:"rider_weight_min_lbs,omitempty"`
	RiderWeightMaxLbs   *float64 `json:"rider_weight_max_lbs,omitempty"`
}
