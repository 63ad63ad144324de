package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBadge rows are unique on (user_id, badge_scope, COALESCE(sub_scope, ”)).
type UserBadge struct {
	bun.BaseModel `bun:"table:user_badges,alias:ub"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull"`
	BadgeScope string    `bun:"badge_scope,notnull"`
	SubScope   *string   `bun:"sub_scope"`
	Rank       int       `bun:"rank,notnull"`
	AchievedAt time.Time `bun:"achieved_at,notnull"`
	IsNotified bool      `bun:"is_notified,notnull,default:false"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
