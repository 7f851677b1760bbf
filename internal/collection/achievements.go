package collection

import (
	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

// Achievement ids. Each id has exactly one rule in Evaluate.
const (
	AchFirstStep         = "first_step"
	AchDirectionComplete = "direction_complete"
	AchSalesComplete     = "sales_complete"
	AchMarketingComplete = "marketing_complete"
	AchHRComplete        = "hr_complete"
	AchFinanceComplete   = "finance_complete"
	AchOpsComplete       = "ops_complete"
	AchITComplete        = "it_complete"
	AchLogisticsComplete = "logistics_complete"
	AchLegendHunter      = "legend_hunter"
	AchHalfwayThere      = "halfway_there"
)

var achievementCatalog = []models.Achievement{
	{ID: AchFirstStep, Title: "Bienvenido a LICON", Description: "Abre tu primer sobre de tarjetas.", Icon: "👋", RewardPacks: 1},
	{ID: AchDirectionComplete, Title: "Líder Nato", Description: "Colecciona todas las tarjetas de Dirección.", Icon: "👔", RewardPacks: 2},
	{ID: AchSalesComplete, Title: "Lobo de Ventas", Description: "Colecciona todas las tarjetas de Ventas.", Icon: "💼", RewardPacks: 2},
	{ID: AchMarketingComplete, Title: "Genio Creativo", Description: "Colecciona todas las tarjetas de Marketing.", Icon: "🎨", RewardPacks: 2},
	{ID: AchHRComplete, Title: "Gestor de Talento", Description: "Colecciona todas las tarjetas de RR.HH.", Icon: "🤝", RewardPacks: 2},
	{ID: AchFinanceComplete, Title: "Maestro de los Números", Description: "Colecciona todas las tarjetas de Finanzas.", Icon: "💰", RewardPacks: 2},
	{ID: AchOpsComplete, Title: "Ingeniero de Procesos", Description: "Colecciona todas las tarjetas de Operaciones.", Icon: "⚙️", RewardPacks: 2},
	{ID: AchITComplete, Title: "Hacker Ético", Description: "Colecciona todas las tarjetas de Sistemas.", Icon: "💻", RewardPacks: 2},
	{ID: AchLogisticsComplete, Title: "Estratega de Rutas", Description: "Colecciona todas las tarjetas de Logística.", Icon: "🚚", RewardPacks: 2},
	{ID: AchLegendHunter, Title: "Leyenda Viviente", Description: "Encuentra una carta de rareza Legendaria.", Icon: "✨", RewardPacks: 3},
	{ID: AchHalfwayThere, Title: "Mitad del Camino", Description: "Colecciona el 50% de las cartas únicas.", Icon: "📈", RewardPacks: 1},
}

// departmentAchievements maps each department to its completion achievement.
var departmentAchievements = map[string]models.Department{
	AchDirectionComplete: models.DepartmentDirection,
	AchSalesComplete:     models.DepartmentSales,
	AchMarketingComplete: models.DepartmentMarketing,
	AchHRComplete:        models.DepartmentHR,
	AchFinanceComplete:   models.DepartmentFinance,
	AchOpsComplete:       models.DepartmentOperations,
	AchITComplete:        models.DepartmentIT,
	AchLogisticsComplete: models.DepartmentLogistics,
}

// AchievementCatalog returns the fixed achievement catalog in display order.
func AchievementCatalog() []models.Achievement {
	out := make([]models.Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (models.Achievement, bool) {
	for _, ach := range achievementCatalog {
		if ach.ID == id {
			return ach, true
		}
	}
	return models.Achievement{}, false
}

// Evaluate returns the ids of achievements whose rule newly holds for the
// current state. Already unlocked ids are never reported again, so calling
// Evaluate twice without an intervening mutation yields nothing the second
// time. Evaluate itself never mutates state; callers must fold the result in
// with ApplyUnlocks as one transition.
func Evaluate(s State, roster []models.Card) []string {
	unlocked := make(map[string]bool, len(s.UnlockedAchievements))
	for _, id := range s.UnlockedAchievements {
		unlocked[id] = true
	}
	owned := s.OwnedSet()

	var newUnlocks []string
	for _, ach := range achievementCatalog {
		if unlocked[ach.ID] {
			continue
		}
		if ruleHolds(ach.ID, s, roster, owned) {
			newUnlocks = append(newUnlocks, ach.ID)
		}
	}
	return newUnlocks
}

func ruleHolds(id string, s State, roster []models.Card, owned map[int]bool) bool {
	if dept, ok := departmentAchievements[id]; ok {
		return departmentComplete(dept, roster, owned)
	}
	switch id {
	case AchFirstStep:
		return len(s.OwnedCardIDs) > 0
	case AchLegendHunter:
		for _, c := range roster {
			if c.Rarity == models.RarityLegendary && owned[c.ID] {
				return true
			}
		}
		return false
	case AchHalfwayThere:
		return len(roster) > 0 && float64(len(owned))/float64(len(roster)) >= 0.5
	}
	return false
}

// departmentComplete is vacuously false for a department with no cards in
// the roster, so empty departments never auto-unlock.
func departmentComplete(dept models.Department, roster []models.Card, owned map[int]bool) bool {
	found := false
	for _, c := range roster {
		if c.Department != dept {
			continue
		}
		found = true
		if !owned[c.ID] {
			return false
		}
	}
	return found
}

// ApplyUnlocks records the given achievement ids and grants their reward
// packs as a single transition. Ids already unlocked or missing from the
// catalog are skipped. Reward sums are commutative, so the order of ids
// never changes the final pack count.
func ApplyUnlocks(s State, ids []string) State {
	next := s.Clone()
	have := make(map[string]bool, len(next.UnlockedAchievements))
	for _, id := range next.UnlockedAchievements {
		have[id] = true
	}
	for _, id := range ids {
		if have[id] {
			continue
		}
		ach, ok := AchievementByID(id)
		if !ok {
			continue
		}
		next.UnlockedAchievements = append(next.UnlockedAchievements, id)
		next.PacksAvailable += ach.RewardPacks
		have[id] = true
	}
	return next
}
