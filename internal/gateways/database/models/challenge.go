package models

import "github.com/uptrace/bun"

type Challenge struct {
	bun.BaseModel `bun:"table:challenges,alias:ch"`

	ID             string `bun:"id,pk"`
	Title          string `bun:"title,notnull"`
	MaxCompletions *int   `bun:"max_completions"`
	IsVisible      bool   `bun:"is_visible,notnull,default:true"`
}

type UserRegion struct {
	bun.BaseModel `bun:"table:user_regions,alias:ur"`

	UserID string `bun:"user_id,pk"`
	Region string `bun:"region,notnull"`
}
