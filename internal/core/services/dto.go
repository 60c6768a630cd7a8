package services

import (
	"strings"
	"time"

	"github.com/srgjo27/sitterbook/internal/core/domain"
)

// WarningNotificationFailed is attached to responses whose transition was
// committed but whose booking event could not be delivered.
const WarningNotificationFailed = "booking recorded, notification failed"

type CustomerInfo struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
	Phone string `json:"phone" validate:"required,max=40"`
}

type PetInfo struct {
	Name  string         `json:"name" validate:"required,max=100"`
	Type  domain.PetType `json:"type" validate:"required,oneof=dog cat bird small_animal other"`
	Breed string         `json:"breed" validate:"max=100"`
	Notes string         `json:"notes" validate:"max=2000"`
}

type LocationInfo struct {
	Address            string `json:"address" validate:"required,max=500"`
	City               string `json:"city" validate:"required,max=200"`
	PostalCode         string `json:"postal_code" validate:"required,max=20"`
	AccessInstructions string `json:"access_instructions" validate:"max=2000"`
}

type CreateBookingRequest struct {
	Customer  CustomerInfo `json:"customer"`
	Pets      []PetInfo    `json:"pets" validate:"required,min=1,unique=Name,dive"`
	SitterID  string       `json:"sitter_id" validate:"required,uuid"`
	ServiceID string       `json:"service_id" validate:"required,uuid"`
	StartDate string       `json:"start_date" validate:"required"`
	EndDate   string       `json:"end_date" validate:"required"`
	Addons    []string     `json:"addons" validate:"omitempty,unique,dive,required,max=100"`
	Location  LocationInfo `json:"location"`
	Notes     string       `json:"notes" validate:"max=2000"`
}

// normalized trims identity fields and lowercases the email so validation
// and the customer/pet upserts see the same values. The caller's pet slice
// is not modified.
func (r CreateBookingRequest) normalized() CreateBookingRequest {
	r.Customer.Name = strings.TrimSpace(r.Customer.Name)
	r.Customer.Email = strings.ToLower(strings.TrimSpace(r.Customer.Email))
	r.Customer.Phone = strings.TrimSpace(r.Customer.Phone)

	pets := make([]PetInfo, len(r.Pets))
	for i, p := range r.Pets {
		p.Name = strings.TrimSpace(p.Name)
		pets[i] = p
	}
	if r.Pets != nil {
		r.Pets = pets
	}
	return r
}

type CreateBookingResponse struct {
	BookingID  string          `json:"booking_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Recipients []RecipientView `json:"recipients"`
	Warnings   []string        `json:"warnings,omitempty"`
}

type NotifyRequest struct {
	SitterIDs []string `json:"sitter_ids" validate:"required,min=1,unique,dive,uuid"`
}

type NotifyResponse struct {
	BookingID  string          `json:"booking_id"`
	Recipients []RecipientView `json:"recipients"`
	Warnings   []string        `json:"warnings,omitempty"`
}

type RespondRequest struct {
	SitterID string `json:"sitter_id" validate:"required,uuid"`
}

type AcceptResponse struct {
	BookingID string                `json:"booking_id"`
	SitterID  string                `json:"sitter_id"`
	ServiceID string                `json:"service_id"`
	Status    string                `json:"status"`
	Pricing   domain.CostBreakdown  `json:"pricing"`
	Addons    []domain.AppliedAddon `json:"addons"`
	Warnings  []string              `json:"warnings,omitempty"`
}

type DeclineResponse struct {
	BookingID     string   `json:"booking_id"`
	SitterID      string   `json:"sitter_id"`
	BookingStatus string   `json:"booking_status"`
	Remaining     int      `json:"remaining_recipients"`
	Warnings      []string `json:"warnings,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type TransitionResponse struct {
	BookingID string   `json:"booking_id"`
	Status    string   `json:"status"`
	Warnings  []string `json:"warnings,omitempty"`
}

type QuoteResponse struct {
	BookingID string               `json:"booking_id"`
	SitterID  string               `json:"sitter_id"`
	ServiceID string               `json:"service_id"`
	Frozen    bool                 `json:"frozen"`
	Pricing   domain.CostBreakdown `json:"pricing"`
}

type MarkPaidRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	Method      string `json:"method" validate:"required,oneof=stripe card cash bank_transfer other"`
}

type MarkPaidResponse struct {
	BookingID       string     `json:"booking_id"`
	PaymentStatus   string     `json:"payment_status"`
	AmountPaidCents int64      `json:"amount_paid_cents"`
	PaidAt          *time.Time `json:"paid_at"`
	Method          string     `json:"method"`
	AlreadyPaid     bool       `json:"already_paid"`
	Warnings        []string   `json:"warnings,omitempty"`
}

type AuditResponse struct {
	BookingID  string               `json:"booking_id"`
	Consistent bool                 `json:"consistent"`
	Stored     domain.CostBreakdown `json:"stored"`
	Recomputed domain.CostBreakdown `json:"recomputed"`
}

type RecipientView struct {
	SitterID    string     `json:"sitter_id"`
	ServiceID   string     `json:"service_id"`
	Status      string     `json:"status"`
	NotifiedAt  time.Time  `json:"notified_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type PaymentView struct {
	Status      string     `json:"status"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Method      string     `json:"method,omitempty"`
}

type BookingView struct {
	ID              string                 `json:"id"`
	CustomerID      string                 `json:"customer_id"`
	SitterID        *string                `json:"sitter_id"`
	ServiceID       string                 `json:"service_id"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	Nights          int                    `json:"nights"`
	Status          string                 `json:"status"`
	RequestedAddons []string               `json:"requested_addons"`
	AppliedAddons   []domain.AppliedAddon  `json:"applied_addons,omitempty"`
	Pricing         *domain.CostBreakdown  `json:"pricing"`
	Payment         *PaymentView           `json:"payment,omitempty"`
	Location        domain.LocationDetails `json:"location"`
	Notes           string                 `json:"notes,omitempty"`
	Recipients      []RecipientView        `json:"recipients"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	AcceptedAt      *time.Time             `json:"accepted_at,omitempty"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
}

func toRecipientViews(entries []domain.RecipientEntry) []RecipientView {
	out := make([]RecipientView, 0, len(entries))
	for _, e := range entries {
		out = append(out, RecipientView{
			SitterID:    e.SitterID.String(),
			ServiceID:   e.ServiceID.String(),
			Status:      string(e.Status),
			NotifiedAt:  e.NotifiedAt,
			RespondedAt: e.RespondedAt,
		})
	}
	return out
}

func toBookingView(b *domain.BookingRequest, recipients []domain.RecipientEntry) *BookingView {
	v := &BookingView{
		ID:              b.ID.String(),
		CustomerID:      b.CustomerID.String(),
		ServiceID:       b.ServiceID.String(),
		StartDate:       b.Stay.Start.Format(domain.DateLayout),
		EndDate:         b.Stay.End.Format(domain.DateLayout),
		Nights:          b.Stay.Nights(),
		Status:          string(b.Status),
		RequestedAddons: b.RequestedAddons,
		AppliedAddons:   b.AppliedAddons,
		Pricing:         b.Pricing,
		Location:        b.Location,
		Notes:           b.Notes,
		Recipients:      toRecipientViews(recipients),
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		AcceptedAt:      b.AcceptedAt,
		ResolvedAt:      b.ResolvedAt,
	}
	if v.RequestedAddons == nil {
		v.RequestedAddons = []string{}
	}
	if b.SitterID != nil {
		id := b.SitterID.String()
		v.SitterID = &id
	}
	if b.Status.IsPayable() {
		v.Payment = &PaymentView{
			Status:      string(b.Payment.Status),
			AmountCents: b.Payment.AmountCents,
			PaidAt:      b.Payment.PaidAt,
			Method:      string(b.Payment.Method),
		}
	}
	return v
}
