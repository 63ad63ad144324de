package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserLevelState struct {
	bun.BaseModel `bun:"table:user_level_states,alias:uls"`

	UserID            string    `bun:"user_id,pk"`
	Level             int       `bun:"level,notnull,default:1"`
	CumulativePoints  int       `bun:"cumulative_points,notnull,default:0"`
	LastNotifiedLevel int       `bun:"last_notified_level,notnull,default:1"`
	Version           int       `bun:"version,notnull,default:0"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
