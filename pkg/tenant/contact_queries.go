package tenant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// FetchCustomerContact reads a customer's contact datum from the tenant's
// DMS. Returns ErrCustomerNotFound if no row exists.
func (g *Gateway) FetchCustomerContact(ctx context.Context, tenantID, customerID string) (ContactInfo, error) {
	pool, err := g.GetTenantPool(ctx, tenantID)
	if err != nil {
		return ContactInfo{}, err
	}

	row := pool.QueryRow(ctx, `
		SELECT email, phone, COALESCE(contact_preference, ''), do_not_disturb_until
		FROM customers WHERE id = $1`, customerID)

	var c ContactInfo
	err = row.Scan(&c.Email, &c.Phone, &c.ContactPreference, &c.DoNotDisturbUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return ContactInfo{}, ErrCustomerNotFound
	}
	return c, err
}

// GetContactPreference returns a customer's stored channel preference, one
// of the Preference* constants or "" when unset. do_not_contact is
// authoritative: callers must treat it as an unconditional suppression.
func (g *Gateway) GetContactPreference(ctx context.Context, tenantID, customerID string) (string, error) {
	contact, err := g.FetchCustomerContact(ctx, tenantID, customerID)
	if err != nil {
		return "", err
	}
	return contact.ContactPreference, nil
}
