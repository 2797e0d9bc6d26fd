package entity

type Category struct {
	Lookup
}
