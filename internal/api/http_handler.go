package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"snowboard-catalog-service/internal/catalog"
	"snowboard-catalog-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// HTTPHandler holds dependencies for HTTP handlers. The catalog core is a
// library; this layer is a stand-in for the filter-state producer, mapping
// one-shot query strings onto a FilterState and running it through the
// engine.
type HTTPHandler struct {
	engine       *catalog.Engine
	facets       *catalog.FacetCatalog
	catalogStore store.CatalogStorer
	validate     *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(engine *catalog.Engine, facets *catalog.FacetCatalog, cs store.CatalogStorer) *HTTPHandler {
	return &HTTPHandler{
		engine:       engine,
		facets:       facets,
		catalogStore: cs,
		validate:     validator.New(),
	}
}

// RegisterRoutes mounts the catalog browse routes.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/boards", h.ListBoards)
		r.Get("/boards/{boardId}", h.GetBoardByID)
		r.Get("/boards/{boardId}/sizes", h.ListBoardSizes)
		r.Get("/facets", h.ListFacets)
	})
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// --- Query parameter parsing ---

func parseInt64List(values url.Values, key string) ([]int64, error) {
	raw := values[key]
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("invalid " + key + " value: " + v)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseIntList(values url.Values, key string) ([]int, error) {
	raw := values[key]
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid " + key + " value: " + v)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseFloatPtr(values url.Values, key string) (*float64, error) {
	v := values.Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + " value: " + v)
	}
	return &f, nil
}

// boardsQueryInput carries the validated scalar parts of the boards query.
type boardsQueryInput struct {
	Page    int     `validate:"gte=1"`
	FlexMin float64 `validate:"gte=1,lte=10"`
	FlexMax float64 `validate:"gte=1,lte=10"`
}

// parseFilterState maps the query string onto a FilterState plus page
// number. Range bounds with min > max are accepted as given; the store
// simply returns an empty result for them.
func (h *HTTPHandler) parseFilterState(r *http.Request) (catalog.FilterState, int, error) {
	q := r.URL.Query()
	f := catalog.NewFilterState()

	var err error
	if f.BrandIDs, err = parseInt64List(q, "brand_id"); err != nil {
		return f, 0, err
	}
	if f.ProfileIDs, err = parseInt64List(q, "profile_id"); err != nil {
		return f, 0, err
	}
	if f.ShapeIDs, err = parseInt64List(q, "shape_id"); err != nil {
		return f, 0, err
	}
	if f.ResponseTypeIDs, err = parseInt64List(q, "response_type_id"); err != nil {
		return f, 0, err
	}
	if f.AbilityLevelIDs, err = parseInt64List(q, "ability_level_id"); err != nil {
		return f, 0, err
	}
	if f.TerrainTypeIDs, err = parseInt64List(q, "terrain_type_id"); err != nil {
		return f, 0, err
	}
	if f.ModelYears, err = parseIntList(q, "year"); err != nil {
		return f, 0, err
	}
	f.Genders = q["gender"]
	f.Search = q.Get("search")

	if v, err := parseFloatPtr(q, "flex_min"); err != nil {
		return f, 0, err
	} else if v != nil {
		f.FlexMin = *v
	}
	if v, err := parseFloatPtr(q, "flex_max"); err != nil {
		return f, 0, err
	} else if v != nil {
		f.FlexMax = *v
	}
	if f.MSRPMin, err = parseFloatPtr(q, "price_min"); err != nil {
		return f, 0, err
	}
	if f.MSRPMax, err = parseFloatPtr(q, "price_max"); err != nil {
		return f, 0, err
	}
	if f.Sizes.SizeMinCM, err = parseFloatPtr(q, "size_min"); err != nil {
		return f, 0, err
	}
	if f.Sizes.SizeMaxCM, err = parseFloatPtr(q, "size_max"); err != nil {
		return f, 0, err
	}
	if f.Sizes.WaistWidthMinMM, err = parseFloatPtr(q, "waist_min"); err != nil {
		return f, 0, err
	}
	if f.Sizes.WaistWidthMaxMM, err = parseFloatPtr(q, "waist_max"); err != nil {
		return f, 0, err
	}
	if f.Sizes.RiderWeightMinLbs, err = parseFloatPtr(q, "weight_min"); err != nil {
		return f, 0, err
	}
	if f.Sizes.RiderWeightMaxLbs, err = parseFloatPtr(q, "weight_max"); err != nil {
		return f, 0, err
	}
	if q.Get("wide") == "true" {
		f.Sizes.WideOnly = true
	}

	page := 1
	if pageStr := q.Get("page"); pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil {
			return f, 0, errors.New("invalid page value: " + pageStr)
		}
		page = n
	}

	input := boardsQueryInput{Page: page, FlexMin: f.FlexMin, FlexMax: f.FlexMax}
	if err := h.validate.Struct(input); err != nil {
		return f, 0, errors.New("validation failed: " + err.Error())
	}

	return f, page, nil
}

// --- Handlers ---

func (h *HTTPHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	filter, page, err := h.parseFilterState(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.Query(r.Context(), filter, page)
	if err != nil {
		log.Printf("ERROR: ListBoards catalog query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve boards")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) GetBoardByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "boardId")
	boardID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || boardID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid board ID format")
		return
	}

	row, err := h.catalogStore.GetBoardByID(r.Context(), boardID)
	if err != nil {
		if errors.Is(err, store.ErrBoardNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrBoardNotFound.Error())
		} else {
			log.Printf("ERROR: GetBoardByID store operation for ID %d failed: %v", boardID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve board")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, catalog.ProjectBoard(*row))
}

func (h *HTTPHandler) ListBoardSizes(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "boardId")
	boardID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || boardID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid board ID format")
		return
	}

	sizes, err := h.catalogStore.ListBoardSizes(r.Context(), boardID)
	if err != nil {
		log.Printf("ERROR: ListBoardSizes store operation for ID %d failed: %v", boardID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve board sizes")
		return
	}

	respondWithJSON(w, http.StatusOK, sizes)
}

// ListFacets returns all cached filter vocabularies in one payload so the
// presentation layer can render every facet widget from a single request.
func (h *HTTPHandler) ListFacets(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Brands        interface{} `json:"brands"`
		Profiles      interface{} `json:"profiles"`
		Shapes        interface{} `json:"shapes"`
		ResponseTypes interface{} `json:"response_types"`
		AbilityLevels interface{} `json:"ability_levels"`
		TerrainTypes  interface{} `json:"terrain_types"`
	}{
		Brands:        h.facets.Brands(),
		Profiles:      h.facets.Profiles(),
		Shapes:        h.facets.Shapes(),
		ResponseTypes: h.facets.ResponseTypes(),
		AbilityLevels: h.facets.AbilityLevels(),
		TerrainTypes:  h.facets.TerrainTypes(),
	}
	respondWithJSON(w, http.StatusOK, response)
}
