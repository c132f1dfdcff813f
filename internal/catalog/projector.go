package catalog

import (
	"snowboard-catalog-service/internal/domain"
	"snowboard-catalog-service/internal/store"
)

// ProjectBoard maps one flat view row into the nested display shape. The
// view does not expose facet surrogate ids, so the nested objects carry the
// canonical name only; a board is identified solely by its top-level id.
func ProjectBoard(row store.BoardRow) domain.Board {
	return domain.Board{
		ID:           row.ID,
		ModelName:    row.ModelName,
		ModelYear:    row.ModelYear,
		FlexRating:   row.FlexRating,
		Gender:       row.Gender,
		MSRP:         row.MSRP,
		ImageURL:     row.ImageURL,
		Brand:        domain.BoardBrand{Name: derefOrEmpty(row.BrandName)},
		Profile:      domain.BoardFacet{StandardName: derefOrEmpty(row.ProfileName)},
		Shape:        domain.BoardFacet{StandardName: derefOrEmpty(row.ShapeName)},
		ResponseType: domain.BoardFacet{StandardName: derefOrEmpty(row.ResponseTypeName)},
	}
}

func ProjectBoards(rows []store.BoardRow) []domain.Board {
	boards := make([]domain.Board, 0, len(rows))
	for _, row := range rows {
		boards = append(boards, ProjectBoard(row))
	}
	return boards
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
