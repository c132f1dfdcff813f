package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"snowboard-catalog-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrBoardNotFound = errors.New("store: board not found")
)

// PostgresStore implements the FacetStorer and CatalogStorer interfaces using
// PostgreSQL. All operations are read-only; the catalog tables are owned by
// the ingestion pipeline.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// --- FacetStorer Implementation ---

func (s *PostgresStore) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name, website_url FROM brand ORDER BY name ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListBrands failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.WebsiteURL); err != nil {
			return nil, fmt.Errorf("store: ListBrands failed to scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListBrands iteration error: %w", err)
	}
	return brands, nil
}

func (s *PostgresStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT id, standard_name, description FROM profile ORDER BY standard_name ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListProfiles failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.StandardName, &p.Description); err != nil {
			return nil, fmt.Errorf("store: ListProfiles failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProfiles iteration error: %w", err)
	}
	return profiles, nil
}

func (s *PostgresStore) ListShapes(ctx context.Context) ([]domain.Shape, error) {
	query := `SELECT id, standard_name, description FROM shape ORDER BY standard_name ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListShapes failed to query shapes: %w", err)
	}
	defer rows.Close()

	shapes := make([]domain.Shape, 0)
	for rows.Next() {
		var sh domain.Shape
		if err := rows.Scan(&sh.ID, &sh.StandardName, &sh.Description); err != nil {
			return nil, fmt.Errorf("store: ListShapes failed to scan shape row: %w", err)
		}
		shapes = append(shapes, sh)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListShapes iteration error: %w", err)
	}
	return shapes, nil
}

func (s *PostgresStore) ListResponseTypes(ctx context.Context) ([]domain.ResponseType, error) {
	query := `SELECT id, standard_name, description FROM response_type ORDER BY standard_name ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListResponseTypes failed to query response types: %w", err)
	}
	defer rows.Close()

	responseTypes := make([]domain.ResponseType, 0)
	for rows.Next() {
		var rt domain.ResponseType
		if err := rows.Scan(&rt.ID, &rt.StandardName, &rt.Description); err != nil {
			return nil, fmt.Errorf("store: ListResponseTypes failed to scan response type row: %w", err)
		}
		responseTypes = append(responseTypes, rt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListResponseTypes iteration error: %w", err)
	}
	return responseTypes, nil
}

func (s *PostgresStore) ListAbilityLevels(ctx context.Context) ([]domain.AbilityLevel, error) {
	// sort_order keeps Beginner before Expert; alphabetical would not.
	query := `SELECT id, name, sort_order FROM ability_level ORDER BY sort_order ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListAbilityLevels failed to query ability levels: %w", err)
	}
	defer rows.Close()

	levels := make([]domain.AbilityLevel, 0)
	for rows.Next() {
		var al domain.AbilityLevel
		if err := rows.Scan(&al.ID, &al.Name, &al.SortOrder); err != nil {
			return nil, fmt.Errorf("store: ListAbilityLevels failed to scan ability level row: %w", err)
		}
		levels = append(levels, al)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListAbilityLevels iteration error: %w", err)
	}
	return levels, nil
}

func (s *PostgresStore) ListTerrainTypes(ctx context.Context) ([]domain.TerrainType, error) {
	query := `SELECT id, name FROM terrain_type ORDER BY name ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListTerrainTypes failed to query terrain types: %w", err)
	}
	defer rows.Close()

	terrains := make([]domain.TerrainType, 0)
	for rows.Next() {
		var tt domain.TerrainType
		if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
			return nil, fmt.Errorf("store: ListTerrainTypes failed to scan terrain type row: %w", err)
		}
		terrains = append(terrains, tt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListTerrainTypes iteration error: %w", err)
	}
	return terrains, nil
}

// --- CatalogStorer Implementation ---

// ListBoards builds the conjunctive predicate set over board_model_detail,
// runs the count query and the page query with the same WHERE clause, and
// returns the page rows plus the exact total count.
func (s *PostgresStore) ListBoards(ctx context.Context, params ListBoardsParams) ([]BoardRow, int, error) {
	var queryArgs []interface{}
	var whereClauses []string
	argID := 1

	if len(params.BoardIDs) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("id = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.BoardIDs))
		argID++
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("model_name ILIKE $%d", argID))
		queryArgs = append(queryArgs, "%"+search+"%")
		argID++
	}
	if len(params.BrandNames) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("brand_name = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.BrandNames))
		argID++
	}
	if len(params.ModelYears) > 0 {
		years := make([]int64, len(params.ModelYears))
		for i, y := range params.ModelYears {
			years[i] = int64(y)
		}
		whereClauses = append(whereClauses, fmt.Sprintf("model_year = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(years))
		argID++
	}
	if len(params.Genders) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("gender = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.Genders))
		argID++
	}
	if len(params.ProfileNames) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("profile_name = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.ProfileNames))
		argID++
	}
	if len(params.ShapeNames) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("shape_name = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.ShapeNames))
		argID++
	}
	if len(params.ResponseTypeNames) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("response_type_name = ANY($%d)", argID))
		queryArgs = append(queryArgs, pq.Array(params.ResponseTypeNames))
		argID++
	}
	if params.FlexMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("flex_rating >= $%d", argID))
		queryArgs = append(queryArgs, *params.FlexMin)
		argID++
	}
	if params.FlexMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("flex_rating <= $%d", argID))
		queryArgs = append(queryArgs, *params.FlexMax)
		argID++
	}
	if params.MSRPMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("msrp >= $%d", argID))
		queryArgs = append(queryArgs, *params.MSRPMin)
		argID++
	}
	if params.MSRPMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("msrp <= $%d", argID))
		queryArgs = append(queryArgs, *params.MSRPMax)
		argID++
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM board_model_detail" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListBoards failed to count boards: %w", err)
	}

	if totalCount == 0 {
		return []BoardRow{}, 0, nil
	}

	dataQueryPreamble := `
		SELECT id, model_name, model_year, gender, flex_rating, msrp, image_url, brand_name, profile_name, shape_name, response_type_name
		FROM board_model_detail
	`
	// model_name is not unique across brands, so id breaks ties to keep the
	// page boundaries deterministic.
	dataQuery := fmt.Sprintf("%s%s ORDER BY model_name ASC, id ASC LIMIT $%d OFFSET $%d",
		dataQueryPreamble, whereCondition, argID, argID+1)

	finalQueryArgs := append(queryArgs, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, dataQuery, finalQueryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListBoards failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := make([]BoardRow, 0, params.Limit)
	for rows.Next() {
		var b BoardRow
		if err := rows.Scan(
			&b.ID, &b.ModelName, &b.ModelYear, &b.Gender, &b.FlexRating, &b.MSRP,
			&b.ImageURL, &b.BrandName, &b.ProfileName, &b.ShapeName, &b.ResponseTypeName,
		); err != nil {
			return nil, 0, fmt.Errorf("store: ListBoards failed to scan board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: ListBoards iteration error: %w", err)
	}

	return boards, totalCount, nil
}

func (s *PostgresStore) GetBoardByID(ctx context.Context, id int64) (*BoardRow, error) {
	query := `
		SELECT id, model_name, model_year, gender, flex_rating, msrp, image_url, brand_name, profile_name, shape_name, response_type_name
		FROM board_model_detail
		WHERE id = $1;
	`
	var b BoardRow
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ModelName, &b.ModelYear, &b.Gender, &b.FlexRating, &b.MSRP,
		&b.ImageURL, &b.BrandName, &b.ProfileName, &b.ShapeName, &b.ResponseTypeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("store: GetBoardByID failed to scan row: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) ListBoardSizes(ctx context.Context, boardModelID int64) ([]domain.BoardSize, error) {
	query := `
		SELECT id, board_model_id, size_cm, wide, effective_edge_mm, waist_width_mm, tip_width_mm, tail_width_mm,
			running_length_mm, sidecut_radius_m, sidecut_depth_mm, reference_stance_in, min_stance_in, max_stance_in,
			setback_in, insert_count, rider_weight_min_lbs, rider_weight_max_lbs
		FROM board_size
		WHERE board_model_id = $1
		ORDER BY size_cm ASC, wide ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, boardModelID)
	if err != nil {
		return nil, fmt.Errorf("store: ListBoardSizes failed to query sizes: %w", err)
	}
	defer rows.Close()

	sizes := make([]domain.BoardSize, 0)
	for rows.Next() {
		var bs domain.BoardSize
		if err := rows.Scan(
			&bs.ID, &bs.BoardModelID, &bs.SizeCM, &bs.Wide, &bs.EffectiveEdgeMM, &bs.WaistWidthMM,
			&bs.TipWidthMM, &bs.TailWidthMM, &bs.RunningLengthMM, &bs.SidecutRadiusM, &bs.SidecutDepthMM,
			&bs.ReferenceStanceIn, &bs.MinStanceIn, &bs.MaxStanceIn, &bs.SetbackIn, &bs.InsertCount,
			&bs.RiderWeightMinLbs, &bs.RiderWeightMaxLbs,
		); err != nil {
			return nil, fmt.Errorf("store: ListBoardSizes failed to scan size row: %w", err)
		}
		sizes = append(sizes, bs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListBoardSizes iteration error: %w", err)
	}
	return sizes, nil
}

// sizeBound describes one comparison of a SizeFilter bound against a
// board_size column. The rider weight entries intentionally cross over:
// a variant qualifies when its supported weight band overlaps the requested
// band, not when it is contained by it.
type sizeBound struct {
	column   string
	operator string
	value    interface{}
}

func collectSizeBounds(f SizeFilter) []sizeBound {
	var bounds []sizeBound
	addFloat := func(column, operator string, v *float64) {
		if v != nil {
			bounds = append(bounds, sizeBound{column, operator, *v})
		}
	}
	addFloat("size_cm", ">=", f.SizeMinCM)
	addFloat("size_cm", "<=", f.SizeMaxCM)
	addFloat("effective_edge_mm", ">=", f.EffectiveEdgeMinMM)
	addFloat("effective_edge_mm", "<=", f.EffectiveEdgeMaxMM)
	addFloat("waist_width_mm", ">=", f.WaistWidthMinMM)
	addFloat("waist_width_mm", "<=", f.WaistWidthMaxMM)
	addFloat("tip_width_mm", ">=", f.TipWidthMinMM)
	addFloat("tip_width_mm", "<=", f.TipWidthMaxMM)
	addFloat("tail_width_mm", ">=", f.TailWidthMinMM)
	addFloat("tail_width_mm", "<=", f.TailWidthMaxMM)
	addFloat("sidecut_radius_m", ">=", f.SidecutRadiusMinM)
	addFloat("sidecut_radius_m", "<=", f.SidecutRadiusMaxM)
	addFloat("sidecut_depth_mm", ">=", f.SidecutDepthMinMM)
	addFloat("sidecut_depth_mm", "<=", f.SidecutDepthMaxMM)
	addFloat("min_stance_in", ">=", f.MinStanceIn)
	addFloat("max_stance_in", "<=", f.MaxStanceIn)
	addFloat("setback_in", ">=", f.SetbackMinIn)
	addFloat("setback_in", "<=", f.SetbackMaxIn)
	if f.InsertCountMin != nil {
		bounds = append(bounds, sizeBound{"insert_count", ">=", *f.InsertCountMin})
	}
	if f.InsertCountMax != nil {
		bounds = append(bounds, sizeBound{"insert_count", "<=", *f.InsertCountMax})
	}
	// Weight overlap: requested min against the variant's max, requested max
	// against the variant's min.
	addFloat("rider_weight_max_lbs", ">=", f.RiderWeightMinLbs)
	addFloat("rider_weight_min_lbs", "<=", f.RiderWeightMaxLbs)
	return bounds
}

// BoardIDsMatchingSizes resolves the set of board_model ids owning at least
// one board_size row that satisfies every present bound. Returns nil when
// the filter carries no constraint at all.
func (s *PostgresStore) BoardIDsMatchingSizes(ctx context.Context, filter SizeFilter) ([]int64, error) {
	if !filter.Constrained() {
		return nil, nil
	}

	var queryArgs []interface{}
	var whereClauses []string
	argID := 1

	if filter.WideOnly {
		whereClauses = append(whereClauses, "wide = TRUE")
	}
	for _, b := range collectSizeBounds(filter) {
		whereClauses = append(whereClauses, fmt.Sprintf("%s %s $%d", b.column, b.operator, argID))
		queryArgs = append(queryArgs, b.value)
		argID++
	}

	query := "SELECT DISTINCT board_model_id FROM board_size WHERE " + strings.Join(whereClauses, " AND ")
	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: BoardIDsMatchingSizes failed to query sizes: %w", err)
	}
	defer rows.Close()

	return scanBoardIDs(rows, "BoardIDsMatchingSizes")
}

func (s *PostgresStore) BoardIDsWithAbilityLevels(ctx context.Context, abilityLevelIDs []int64) ([]int64, error) {
	if len(abilityLevelIDs) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT board_model_id FROM board_model_ability_level WHERE ability_level_id = ANY($1);`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(abilityLevelIDs))
	if err != nil {
		return nil, fmt.Errorf("store: BoardIDsWithAbilityLevels failed to query junction: %w", err)
	}
	defer rows.Close()

	return scanBoardIDs(rows, "BoardIDsWithAbilityLevels")
}

func (s *PostgresStore) BoardIDsWithTerrainTypes(ctx context.Context, terrainTypeIDs []int64) ([]int64, error) {
	if len(terrainTypeIDs) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT board_model_id FROM board_model_terrain_type WHERE terrain_type_id = ANY($1);`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(terrainTypeIDs))
	if err != nil {
		return nil, fmt.Errorf("store: BoardIDsWithTerrainTypes failed to query junction: %w", err)
	}
	defer rows.Close()

	return scanBoardIDs(rows, "BoardIDsWithTerrainTypes")
}

func scanBoardIDs(rows *sql.Rows, op string) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: %s failed to scan id: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: %s iteration error: %w", op, err)
	}
	return ids, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		err := s.db.Close()
		if err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
		return nil
	}
	return nil
}
