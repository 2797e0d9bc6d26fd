package entity

type Genre struct {
	Lookup
}
