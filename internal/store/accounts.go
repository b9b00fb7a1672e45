package store

import (
	"servifix-backend/internal/domain"
)

// AddBankAccount registers an account transfers can be received on.
func (s *Store) AddBankAccount(bankName, holder, number string) (domain.BankAccount, error) {
	if bankName == "" || number == "" {
		return domain.BankAccount{}, validationErrorf("bank name and account number are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := domain.BankAccount{
		ID:            newID(),
		BankName:      bankName,
		AccountHolder: holder,
		AccountNumber: number,
	}
	s.state.BankAccounts = append(s.state.BankAccounts, account)
	return account, nil
}

// UpdateBankAccount edits an account.
func (s *Store) UpdateBankAccount(id, bankName, holder, number string) (domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.BankAccounts {
		if s.state.BankAccounts[i].ID != id {
			continue
		}
		acc := &s.state.BankAccounts[i]
		if bankName != "" {
			acc.BankName = bankName
		}
		if holder != "" {
			acc.AccountHolder = holder
		}
		if number != "" {
			acc.AccountNumber = number
		}
		return *acc, nil
	}
	return domain.BankAccount{}, ErrNotFound
}

// DeleteBankAccount removes an account.
func (s *Store) DeleteBankAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.BankAccounts[:0]
	found := false
	for _, a := range s.state.BankAccounts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	s.state.BankAccounts = kept
	if !found {
		return ErrNotFound
	}
	return nil
}

// BankAccounts returns a copy of all accounts.
func (s *Store) BankAccounts() []domain.BankAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BankAccount(nil), s.state.BankAccounts...)
}

// CompanyInfo returns the business identity shown on invoices.
func (s *Store) CompanyInfo() domain.CompanyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CompanyInfo
}

// UpdateCompanyInfo merges non-empty fields into the company identity.
func (s *Store) UpdateCompanyInfo(info domain.CompanyInfo) domain.CompanyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info.Name != "" {
		s.state.CompanyInfo.Name = info.Name
	}
	if info.Address != "" {
		s.state.CompanyInfo.Address = info.Address
	}
	if info.Phone != "" {
		s.state.CompanyInfo.Phone = info.Phone
	}
	if info.WhatsApp != "" {
		s.state.CompanyInfo.WhatsApp = info.WhatsApp
	}
	if info.Email != "" {
		s.state.CompanyInfo.Email = info.Email
	}
	if info.LogoURL != "" {
		s.state.CompanyInfo.LogoURL = info.LogoURL
	}
	return s.state.CompanyInfo
}
