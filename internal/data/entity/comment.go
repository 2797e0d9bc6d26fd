package entity

type Comment struct {
	Contribution
	ReviewID int64 `db:"review_id"`
}
