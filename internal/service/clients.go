package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetClients returns every client.
func (s *Service) GetClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.api.GetRange(ctx, codec.ClientsRange)
	if err != nil {
		return nil, s.translate(err, "clients")
	}
	return codec.DecodeClients(rows), nil
}

// GetClient returns one client by ID.
func (s *Service) GetClient(ctx context.Context, id string) (*model.Client, error) {
	clients, err := s.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, notFound("client", id)
}

// AddClient validates, assigns an ID and appends the client.
func (s *Service) AddClient(ctx context.Context, client model.Client, userName string) (*model.Client, error) {
	if err := validateClient(&client); err != nil {
		return nil, err
	}

	client.ID = model.NewClientID(s.now())
	client.CreatedDate = s.today()
	if client.Status == "" {
		client.Status = "Active"
	}
	if client.PaymentTerms <= 0 {
		client.PaymentTerms = 30
	}

	if err := s.api.AppendRows(ctx, codec.ClientsRange, [][]string{codec.EncodeClient(client)}); err != nil {
		return nil, s.translate(err, "clients")
	}

	s.recordActivity(ctx, model.ActivityClientCreated,
		fmt.Sprintf("Created client %q", client.Name),
		client.ID, client.Name, userName)

	return &client, nil
}

// UpdateClient overwrites a client row located by ID, preserving the ID
// and created date from the stored row.
func (s *Service) UpdateClient(ctx context.Context, client model.Client, userName string) (*model.Client, error) {
	if client.ID == "" {
		return nil, &ValidationError{Violations: []string{"client ID is required"}}
	}
	if err := validateClient(&client); err != nil {
		return nil, err
	}

	rows, err := s.api.GetRange(ctx, codec.ClientsRange)
	if err != nil {
		return nil, s.translate(err, "clients")
	}

	existing := codec.DecodeClients(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == client.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("client", client.ID)
	}

	client.CreatedDate = existing[index].CreatedDate

	rowRange := rangeForRow(codec.ClientsRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeClient(client)}); err != nil {
		return nil, s.translate(err, "clients")
	}

	s.recordActivity(ctx, model.ActivityClientUpdated,
		fmt.Sprintf("Updated client %q", client.Name),
		client.ID, client.Name, userName)

	return &client, nil
}

func validateClient(c *model.Client) error {
	var v violations

	if c.Name == "" {
		v.addf("client name is required")
	}
	if c.ContactEmail != "" && !strings.Contains(c.ContactEmail, "@") {
		v.addf("contact email %q is not a valid address", c.ContactEmail)
	}
	if c.PaymentTerms < 0 {
		v.addf("payment terms cannot be negative")
	}
	if c.HourlyRate < 0 {
		v.addf("hourly rate cannot be negative")
	}

	return v.err()
}
