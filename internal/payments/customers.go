package payments

import (
	"context"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
)

// CustomerValidation is the outcome of diffing a stored customer against the
// expected fields. Differences holds an entry per mismatched field.
type CustomerValidation struct {
	IsValid     bool            `json:"is_valid"`
	NeedsUpdate bool            `json:"needs_update"`
	Differences map[string]bool `json:"differences"`
}

// CustomerOutcome reports what CreateOrUpdateCustomer ended up doing.
type CustomerOutcome struct {
	CustomerID string `json:"customer_id"`
	Created    bool   `json:"created"`
}

func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput, mandate accounts.MandateType) (*gateway.Customer, error) {
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	return call(ctx, s, mandate, "customer.create", input.Email, func(ctx context.Context, client gateway.Client) (*gateway.Customer, error) {
		return client.CreateCustomer(ctx, gateway.CustomerParams{
			Name:    input.Name,
			Email:   input.Email,
			Contact: input.Contact,
		})
	})
}

func (s *Service) FetchCustomer(ctx context.Context, customerID string, mandate accounts.MandateType) (*gateway.Customer, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "CustomerID", Message: "Customer id is mandatory."}
	}

	return call(ctx, s, mandate, "customer.fetch", customerID, func(ctx context.Context, client gateway.Client) (*gateway.Customer, error) {
		return client.FetchCustomer(ctx, customerID)
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, customerID string, input CustomerInput, mandate accounts.MandateType) (*gateway.Customer, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "CustomerID", Message: "Customer id is mandatory."}
	}
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	return call(ctx, s, mandate, "customer.update", input.Email, func(ctx context.Context, client gateway.Client) (*gateway.Customer, error) {
		return client.EditCustomer(ctx, customerID, gateway.CustomerParams{
			Name:    input.Name,
			Email:   input.Email,
			Contact: input.Contact,
		})
	})
}

// ValidateCustomer fetches the stored customer and diffs name, email and
// contact against the expected values.
func (s *Service) ValidateCustomer(ctx context.Context, customerID string, expected CustomerInput, mandate accounts.MandateType) (*CustomerValidation, error) {
	stored, err := s.FetchCustomer(ctx, customerID, mandate)
	if err != nil {
		return nil, err
	}

	differences := make(map[string]bool)
	if stored.Name != expected.Name {
		differences["name"] = true
	}
	if stored.Email != expected.Email {
		differences["email"] = true
	}
	if stored.Contact != expected.Contact {
		differences["contact"] = true
	}

	needsUpdate := len(differences) > 0
	return &CustomerValidation{
		IsValid:     !needsUpdate,
		NeedsUpdate: needsUpdate,
		Differences: differences,
	}, nil
}

// CreateOrUpdateCustomer creates the customer when no id is supplied. With an
// id it reconciles: any differing field triggers a full update of all three
// fields; identical records are left alone. A definitive not-found on fetch
// also falls through to create; transient fetch failures propagate so an
// outage cannot mint duplicate customers.
func (s *Service) CreateOrUpdateCustomer(ctx context.Context, customerID string, input CustomerInput, mandate accounts.MandateType) (*CustomerOutcome, error) {
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	if customerID == "" {
		created, err := s.CreateCustomer(ctx, input, mandate)
		if err != nil {
			return nil, err
		}
		return &CustomerOutcome{CustomerID: created.ID, Created: true}, nil
	}

	validation, err := s.ValidateCustomer(ctx, customerID, input, mandate)
	if err != nil {
		if gateway.IsNotFound(err) {
			created, cerr := s.CreateCustomer(ctx, input, mandate)
			if cerr != nil {
				return nil, cerr
			}
			return &CustomerOutcome{CustomerID: created.ID, Created: true}, nil
		}
		return nil, err
	}

	if validation.NeedsUpdate {
		if _, err := s.UpdateCustomer(ctx, customerID, input, mandate); err != nil {
			return nil, err
		}
	}
	return &CustomerOutcome{CustomerID: customerID, Created: false}, nil
}
