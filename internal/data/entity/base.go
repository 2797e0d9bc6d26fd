package entity

import (
	"time"
)

// Lookup is the shape shared by categories and genres.
type Lookup struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// Contribution is the shape shared by reviews and comments.
type Contribution struct {
	ID       int64     `db:"id"`
	AuthorID int64     `db:"author_id"`
	Text     string    `db:"text"`
	PubDate  time.Time `db:"pub_date"`

	// filled by read queries only
	AuthorUsername string `db:"author_username"`
}

func (c *Contribution) OwnerID() int64 {
	return c.AuthorID
}
