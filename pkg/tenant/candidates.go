package tenant

import (
	"context"
	"time"
)

// ServiceReminderCandidate is one row from ServiceReminderCandidates: a sale
// whose purchase date falls in the 23-25 month reminder window.
type ServiceReminderCandidate struct {
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	EquipmentModel  string
	EquipmentSerial string
	PurchaseDate    time.Time
}

// ServiceReminderCandidates returns equipment sales with purchase_date in
// [now-25mo, now-23mo] whose customer has an email on file.
func (g *Gateway) ServiceReminderCandidates(ctx context.Context, tenantID string) ([]ServiceReminderCandidate, error) {
	pool, err := g.GetTenantPool(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT c.id, c.first_name || ' ' || c.last_name, c.email,
			e.model, e.serial, e.purchase_date
		FROM equipment e
		JOIN customers c ON c.id = e.customer_id
		WHERE e.purchase_date BETWEEN now() - interval '25 months' AND now() - interval '23 months'
		  AND c.email IS NOT NULL AND c.email <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ServiceReminderCandidate
	for rows.Next() {
		var c ServiceReminderCandidate
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.CustomerEmail,
			&c.EquipmentModel, &c.EquipmentSerial, &c.PurchaseDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppointmentCandidate is one row from AppointmentsInConfirmationWindow.
type AppointmentCandidate struct {
	AppointmentID  string
	CustomerID     string
	CustomerName   string
	CustomerPhone  string
	ScheduledStart time.Time
}

// AppointmentsInConfirmationWindow returns appointments with scheduled_start
// in [now+24h, now+25h] whose customer has a phone on file.
func (g *Gateway) AppointmentsInConfirmationWindow(ctx context.Context, tenantID string) ([]AppointmentCandidate, error) {
	pool, err := g.GetTenantPool(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT a.id, c.id, c.first_name || ' ' || c.last_name, c.phone, a.scheduled_start
		FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.scheduled_start BETWEEN now() + interval '24 hours' AND now() + interval '25 hours'
		  AND c.phone IS NOT NULL AND c.phone <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppointmentCandidate
	for rows.Next() {
		var c AppointmentCandidate
		if err := rows.Scan(&c.AppointmentID, &c.CustomerID, &c.CustomerName,
			&c.CustomerPhone, &c.ScheduledStart); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InvoiceCandidate is one row from PastDueInvoices.
type InvoiceCandidate struct {
	InvoiceID     string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	DueDate       time.Time
	Balance       float64
}

// PastDueInvoices returns invoices with due_date <= now-30d and balance > 0
// whose customer has an email on file.
func (g *Gateway) PastDueInvoices(ctx context.Context, tenantID string) ([]InvoiceCandidate, error) {
	pool, err := g.GetTenantPool(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT i.id, c.id, c.first_name || ' ' || c.last_name, c.email, i.due_date, i.balance
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.due_date <= now() - interval '30 days' AND i.balance > 0
		  AND c.email IS NOT NULL AND c.email <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceCandidate
	for rows.Next() {
		var c InvoiceCandidate
		if err := rows.Scan(&c.InvoiceID, &c.CustomerID, &c.CustomerName,
			&c.CustomerEmail, &c.DueDate, &c.Balance); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
