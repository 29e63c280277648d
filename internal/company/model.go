package company

import (
	"time"

	"github.com/uptrace/bun"
)

type Company struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID        string    `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Ref is the id+name projection embedded in job and application payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Company) Ref() Ref {
	return Ref{ID: c.ID, Name: c.Name}
}
