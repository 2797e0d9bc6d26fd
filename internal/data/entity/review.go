package entity

const (
	MinScore = 1
	MaxScore = 10
)

type Review struct {
	Contribution
	TitleID int64 `db:"title_id"`
	Score   int   `db:"score"` // 1-10
}
