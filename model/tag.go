package model

type TagEntity struct {
	ID   uint64 `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,lowercase"`
}
