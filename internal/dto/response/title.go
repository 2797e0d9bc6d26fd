package response

import (
	"math"

	"yamdb/internal/data/entity"
)

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleToResponse reports the integer part of the average score as rating.
func TitleToResponse(title *entity.TitleDetail) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(title.Genres)),
	}

	if title.Rating != nil {
		rating := int(math.Trunc(*title.Rating))
		resp.Rating = &rating
	}
	if title.Category != nil {
		category := CategoryToResponse(title.Category)
		resp.Category = &category
	}
	for _, g := range title.Genres {
		resp.Genre = append(resp.Genre, GenreToResponse(g))
	}

	return resp
}
