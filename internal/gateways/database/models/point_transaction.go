package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PointTransaction struct {
	bun.BaseModel `bun:"table:point_transactions,alias:pt"`

	ID          string    `bun:"id,pk,type:uuid"`
	UserID      string    `bun:"user_id,notnull"`
	Amount      int       `bun:"amount,notnull"`
	SourceType  string    `bun:"source_type,notnull"`
	SourceID    *string   `bun:"source_id"`
	Description *string   `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
