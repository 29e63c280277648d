package school

import (
	"time"

	"github.com/uptrace/bun"
)

type School struct {
	bun.BaseModel `bun:"table:schools,alias:s"`

	ID        string    `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Ref is the id+name projection embedded in other payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *School) Ref() Ref {
	return Ref{ID: s.ID, Name: s.Name}
}
