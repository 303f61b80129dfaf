package models

import (
	"encoding/json"
	"time"
)

// CompanyTimeLayout is the wire format of Company.AddedDate.
const CompanyTimeLayout = "2006-01-02 15:04:05"

type Company struct {
	ID        int       `json:"company_id"`
	Name      string    `json:"name" validate:"required,notblank,max=100"`
	Location  string    `json:"location" validate:"required,notblank,max=100"`
	Type      string    `json:"type" validate:"required,notblank,max=100"`
	AddedDate time.Time `json:"added_date"`
	Active    bool      `json:"active"`
}

func (c Company) MarshalJSON() ([]byte, error) {
	type wire Company
	return json.Marshal(struct {
		wire
		AddedDate string `json:"added_date"`
	}{
		wire:      wire(c),
		AddedDate: c.AddedDate.Format(CompanyTimeLayout),
	})
}

type CompanyPatch struct {
	Name     Optional[string] `json:"name"`
	Location Optional[string] `json:"location"`
	Type     Optional[string] `json:"type"`
	Active   Optional[bool]   `json:"active"`
}

func (p CompanyPatch) Apply(c *Company) {
	p.Name.apply(&c.Name)
	p.Location.apply(&c.Location)
	p.Type.apply(&c.Type)
	p.Active.apply(&c.Active)
}

func (p CompanyPatch) Nulls() map[string]string {
	return nulls(map[string]bool{
		"name":     p.Name.Null,
		"location": p.Location.Null,
		"type":     p.Type.Null,
		"active":   p.Active.Null,
	})
}
