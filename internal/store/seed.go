package store

import (
	"servifix-backend/internal/domain"
)

// SeedDemo loads a small demo dataset for development environments. It is
// a no-op when the store already has staff (for example after a snapshot
// restore).
func (s *Store) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Staff) > 0 {
		return
	}

	admin := domain.Staff{
		ID:         newID(),
		Name:       "Admin General",
		Email:      "admin@servifix.local",
		CalendarID: newID(),
		Role:       domain.RoleAdmin,
	}
	tech := domain.Staff{
		ID:         newID(),
		Name:       "Marcos (Técnico)",
		Email:      "marcos@servifix.local",
		CalendarID: newID(),
		Role:       domain.RoleTechnician,
	}
	secretary := domain.Staff{
		ID:         newID(),
		Name:       "Ana (Secretaria)",
		Email:      "ana@servifix.local",
		CalendarID: newID(),
		Role:       domain.RoleSecretary,
	}
	s.state.Staff = append(s.state.Staff, admin, tech, secretary)

	s.state.Calendars = append(s.state.Calendars,
		domain.Calendar{ID: admin.CalendarID, Name: "Calendario Admin", StaffID: admin.ID, Color: "#D50000", Availability: DefaultWeeklyAvailability(), Active: true},
		domain.Calendar{ID: tech.CalendarID, Name: "Agenda Marcos", StaffID: tech.ID, Color: "#039BE5", Availability: DefaultWeeklyAvailability(), Active: true},
		domain.Calendar{ID: secretary.CalendarID, Name: "Recepción", StaffID: secretary.ID, Color: "#8E24AA", Availability: DefaultWeeklyAvailability(), Active: true},
	)

	s.state.Products = append(s.state.Products,
		domain.Product{ID: newID(), Name: "Filtro de Aire Universal", Description: "Filtro de aire para unidades de 5 a 10 toneladas", PurchasePrice: 500, SellPrice1: 1200, SellPrice2: 1000, Stock: 50},
		domain.Product{ID: newID(), Name: "Gas Refrigerante R410a (libra)", Description: "Gas para recarga de sistemas de AC", PurchasePrice: 350, SellPrice1: 800, SellPrice2: 750, Stock: 200},
		domain.Product{ID: newID(), Name: "Kit de Mantenimiento Básico", Description: "Incluye limpiador de serpentín y lubricante", PurchasePrice: 800, SellPrice1: 2000, SellPrice2: 1800, Stock: 30},
	)

	s.state.CompanyInfo = domain.CompanyInfo{
		Name:    "ServiFix SRL",
		Address: "Av. Los Próceres #38, Local B3A",
		Phone:   "809-555-0101",
		Email:   "contacto@servifix.local",
	}
}
