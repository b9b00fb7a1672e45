package store

import (
	"servifix-backend/internal/domain"
)

// CustomerInput is the explicit-creation form of a customer.
type CustomerInput struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// AddCustomer creates a customer from the management form. The phone is
// the natural key: a duplicate phone is rejected here, while order
// creation silently reuses the match instead.
func (s *Store) AddCustomer(actorID string, in CustomerInput) (domain.Customer, error) {
	if in.Name == "" || in.Phone == "" {
		return domain.Customer{}, validationErrorf("name and phone are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.Customers {
		if c.Phone == in.Phone {
			return domain.Customer{}, validationErrorf("a customer with phone %s already exists", in.Phone)
		}
	}

	customer := domain.Customer{
		ID:             newID(),
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		ServiceHistory: []string{},
		CreatedByID:    actorID,
	}
	s.state.Customers = append(s.state.Customers, customer)
	return customer, nil
}

// UpdateCustomer edits contact data; the service history is append-only
// and never touched here.
func (s *Store) UpdateCustomer(id string, in CustomerInput) (domain.Customer, error) {
	if in.Name == "" || in.Phone == "" {
		return domain.Customer{}, validationErrorf("name and phone are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := s.findCustomer(id)
	if customer == nil {
		return domain.Customer{}, ErrNotFound
	}
	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.Latitude = in.Latitude
	customer.Longitude = in.Longitude
	return *customer, nil
}

// Customers returns a copy of the customer list, export-ready.
func (s *Store) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Customer(nil), s.state.Customers...)
}

// Customer returns one customer by id.
func (s *Store) Customer(id string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCustomer(id); c != nil {
		return *c, nil
	}
	return domain.Customer{}, ErrNotFound
}

// ImportCustomers replaces the customer list with an imported batch.
// Every record must carry id, name and phone or the whole batch is
// rejected; there are no partial imports.
func (s *Store) ImportCustomers(customers []domain.Customer) error {
	for i, c := range customers {
		if c.ID == "" || c.Name == "" || c.Phone == "" {
			return validationErrorf("record %d: id, name and phone are required", i+1)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imported := make([]domain.Customer, len(customers))
	copy(imported, customers)
	for i := range imported {
		if imported[i].ServiceHistory == nil {
			imported[i].ServiceHistory = []string{}
		}
	}
	s.state.Customers = imported
	return nil
}

// resolveCustomerLocked finds the customer matching the order's phone or
// creates one from the order's contact snapshot. Caller holds the lock.
func (s *Store) resolveCustomerLocked(in CreateOrderInput, createdByID string) *domain.Customer {
	for i := range s.state.Customers {
		if s.state.Customers[i].Phone == in.CustomerPhone {
			return &s.state.Customers[i]
		}
	}
	customer := domain.Customer{
		ID:             newID(),
		Name:           in.CustomerName,
		Phone:          in.CustomerPhone,
		Email:          in.CustomerEmail,
		Address:        in.CustomerAddress,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		ServiceHistory: []string{},
		CreatedByID:    createdByID,
	}
	s.state.Customers = append(s.state.Customers, customer)
	return &s.state.Customers[len(s.state.Customers)-1]
}
