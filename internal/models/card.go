package models

type Department string

const (
	DepartmentDirection  Department = "Dirección"
	DepartmentSales      Department = "Ventas"
	DepartmentMarketing  Department = "Marketing"
	DepartmentHR         Department = "Recursos Humanos"
	DepartmentFinance    Department = "Finanzas"
	DepartmentOperations Department = "Operaciones"
	DepartmentIT         Department = "Sistemas"
	DepartmentLogistics  Department = "Logística"
)

// AllDepartments returns the closed set of departments in catalog order.
func AllDepartments() []Department {
	return []Department{
		DepartmentDirection,
		DepartmentSales,
		DepartmentMarketing,
		DepartmentHR,
		DepartmentFinance,
		DepartmentOperations,
		DepartmentIT,
		DepartmentLogistics,
	}
}

type Rarity string

const (
	RarityCommon    Rarity = "Común"
	RarityRare      Rarity = "Rara"
	RarityEpic      Rarity = "Épica"
	RarityLegendary Rarity = "Legendaria"
)

// AllRarities returns rarities ordered from most to least common.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// Card is a catalog entry owned by the roster provider. The collection
// engine treats cards as read-only; admin overrides are merged into the
// roster before the engine ever sees it.
type Card struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Department  Department `json:"department"`
	Rarity      Rarity     `json:"rarity"`
	ImageURL    string     `json:"image_url"`
	Description string     `json:"description"`
	Power       int        `json:"power"` // 1-99
}

// CardOverride carries admin-edited fields for a single card. Nil fields
// leave the generated value untouched.
type CardOverride struct {
	Name        *string     `json:"name,omitempty"`
	Role        *string     `json:"role,omitempty"`
	Department  *Department `json:"department,omitempty"`
	Rarity      *Rarity     `json:"rarity,omitempty"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Description *string     `json:"description,omitempty"`
	Power       *int        `json:"power,omitempty"`
}

// Apply returns the card with non-nil override fields replaced.
func (o CardOverride) Apply(c Card) Card {
	if o.Name != nil {
		c.Name = *o.Name
	}
	if o.Role != nil {
		c.Role = *o.Role
	}
	if o.Department != nil {
		c.Department = *o.Department
	}
	if o.Rarity != nil {
		c.Rarity = *o.Rarity
	}
	if o.ImageURL != nil {
		c.ImageURL = *o.ImageURL
	}
	if o.Description != nil {
		c.Description = *o.Description
	}
	if o.Power != nil {
		c.Power = *o.Power
	}
	return c
}
