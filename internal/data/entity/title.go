package entity

type Title struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Year        int     `db:"year"`
	Description *string `db:"description"`
	CategoryID  *int64  `db:"category_id"`
}

// TitleDetail is a title with its relations and the average review score.
type TitleDetail struct {
	Title
	Category *Category
	Genres   []*Genre
	// nil when the title has no reviews
	Rating *float64 `db:"rating"`
}
