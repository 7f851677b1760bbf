package roster

import (
	"fmt"

	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

// fixedStarterCards are the hand-curated cards that open every roster. Their
// ids are stable so starter pack sequences and admin overrides can reference
// them across sessions.
var fixedStarterCards = []models.Card{
	{
		ID: 1, Name: "Elena Vargas", Role: "Directora General",
		Department: models.DepartmentDirection, Rarity: models.RarityLegendary,
		ImageURL:    "https://picsum.photos/seed/licon-1/300/400",
		Description: "Fundadora de LICON. Su visión convirtió un almacén familiar en un grupo corporativo.",
		Power:       99,
	},
	{
		ID: 2, Name: "Ricardo Peña", Role: "Gerente Nacional de Ventas",
		Department: models.DepartmentSales, Rarity: models.RarityEpic,
		ImageURL:    "https://picsum.photos/seed/licon-2/300/400",
		Description: "Nunca ha perdido una cuenta clave. Sus cierres de trimestre son legendarios.",
		Power:       95,
	},
	{
		ID: 3, Name: "Lucía Montalvo", Role: "Directora Creativa",
		Department: models.DepartmentMarketing, Rarity: models.RarityEpic,
		ImageURL:    "https://picsum.photos/seed/licon-3/300/400",
		Description: "La mente detrás de cada campaña memorable de la marca.",
		Power:       92,
	},
	{
		ID: 4, Name: "Andrés Solís", Role: "Gerente de Talento",
		Department: models.DepartmentHR, Rarity: models.RarityRare,
		ImageURL:    "https://picsum.photos/seed/licon-4/300/400",
		Description: "Conoce a cada colaborador por su nombre. Y por su café favorito.",
		Power:       88,
	},
	{
		ID: 5, Name: "Patricia Ibarra", Role: "Contralora Corporativa",
		Department: models.DepartmentFinance, Rarity: models.RarityRare,
		ImageURL:    "https://picsum.photos/seed/licon-5/300/400",
		Description: "Ningún centavo se mueve sin que ella lo sepa.",
		Power:       85,
	},
	{
		ID: 6, Name: "Jorge Camacho", Role: "Jefe de Planta",
		Department: models.DepartmentOperations, Rarity: models.RarityCommon,
		ImageURL:    "https://picsum.photos/seed/licon-6/300/400",
		Description: "Veinte años manteniendo la línea de producción sin un solo paro mayor.",
		Power:       80,
	},
	{
		ID: 7, Name: "Mariana Quintero", Role: "Arquitecta de Software",
		Department: models.DepartmentIT, Rarity: models.RarityCommon,
		ImageURL:    "https://picsum.photos/seed/licon-7/300/400",
		Description: "Si el sistema funciona, es gracias a ella. Si falla, ya lo está arreglando.",
		Power:       78,
	},
}

// FixedStarterCards returns the curated opening cards of the roster.
func FixedStarterCards() []models.Card {
	out := make([]models.Card, len(fixedStarterCards))
	copy(out, fixedStarterCards)
	return out
}

// fallbackTemplates deterministically fills roster slots when no generated
// templates are available. Department cycles through the catalog; rarity
// follows a fixed ladder so roughly 1 in 20 cards is Legendary, 1 in 10
// Epic, and 1 in 5 Rare.
func fallbackCard(id, idx int) models.Card {
	depts := models.AllDepartments()
	dept := depts[idx%len(depts)]

	rarity := models.RarityCommon
	switch {
	case idx%20 == 0:
		rarity = models.RarityLegendary
	case idx%10 == 0:
		rarity = models.RarityEpic
	case idx%5 == 0:
		rarity = models.RarityRare
	}

	return models.Card{
		ID:          id,
		Name:        fmt.Sprintf("Colaborador %d", id),
		Role:        fmt.Sprintf("Especialista en %s", dept),
		Department:  dept,
		Rarity:      rarity,
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%d/300/400", id),
		Description: "Comprometido con la excelencia y los valores de LICON.",
		Power:       1 + (idx*37)%99,
	}
}

// FallbackRoster builds the full static roster: the fixed starter cards
// followed by deterministic filler up to size cards.
func FallbackRoster(size int) []models.Card {
	cards := FixedStarterCards()
	for idx := len(cards); len(cards) < size; idx++ {
		cards = append(cards, fallbackCard(idx+1, idx))
	}
	if len(cards) > size {
		cards = cards[:size]
	}
	return cards
}
