package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Year        int      `json:"year" validate:"required,notfuture"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category,omitempty" validate:"omitempty,slug"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,slug"`
}

func (r CreateTitleRequest) AsUpdate() UpdateTitleRequest {
	genres := r.Genre
	if genres == nil {
		genres = []string{}
	}
	update := UpdateTitleRequest{
		Name:          &r.Name,
		Year:          &r.Year,
		Description:   r.Description,
		Genre:         &genres,
		ClearCategory: r.Category == "",
	}
	if r.Category != "" {
		update.Category = &r.Category
	}
	return update
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Year        *int      `json:"year,omitempty" validate:"omitempty,notfuture"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,slug"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,dive,slug"`

	// set by AsUpdate when a replacement body has no category
	ClearCategory bool `json:"-"`
}

// TitleFilterRequest is read from the query string of the title listing.
type TitleFilterRequest struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}
