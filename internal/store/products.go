package store

import (
	"servifix-backend/internal/domain"
)

// ProductInput is the create/edit form of a catalog product.
type ProductInput struct {
	Name          string
	Description   string
	PurchasePrice float64
	SellPrice1    float64
	SellPrice2    float64
	Stock         int
}

// AddProduct adds a catalog product referenced by Inventario line items.
func (s *Store) AddProduct(in ProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, validationErrorf("product name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:            newID(),
		Name:          in.Name,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SellPrice1:    in.SellPrice1,
		SellPrice2:    in.SellPrice2,
		Stock:         in.Stock,
	}
	s.state.Products = append(s.state.Products, product)
	return product, nil
}

// UpdateProduct edits a catalog product.
func (s *Store) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, validationErrorf("product name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Products {
		if s.state.Products[i].ID != id {
			continue
		}
		p := &s.state.Products[i]
		p.Name = in.Name
		p.Description = in.Description
		p.PurchasePrice = in.PurchasePrice
		p.SellPrice1 = in.SellPrice1
		p.SellPrice2 = in.SellPrice2
		p.Stock = in.Stock
		return *p, nil
	}
	return domain.Product{}, ErrNotFound
}

// DeleteProduct removes a catalog product.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Products[:0]
	found := false
	for _, p := range s.state.Products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	s.state.Products = kept
	if !found {
		return ErrNotFound
	}
	return nil
}

// Products returns a copy of the catalog.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.state.Products...)
}
