package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusNew           Status = "new"
	StatusAccepted      Status = "accepted"
	StatusInProgress    Status = "in_progress"
	StatusReady         Status = "ready"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

// nextStatus holds the single forward edge of the linear lifecycle.
var nextStatus = map[Status]Status{
	StatusNew:        StatusAccepted,
	StatusAccepted:   StatusInProgress,
	StatusInProgress: StatusReady,
	StatusReady:      StatusCompleted,
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	switch s {
	case StatusNew, StatusAccepted, StatusInProgress, StatusReady,
		StatusCompleted, StatusCancelled, StatusPaymentFailed:
		return s, true
	}
	return "", false
}

// Terminal reports whether no transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusPaymentFailed
}

// CanTransition validates a requested status change. Cancellation and
// payment rejection are allowed from any non-terminal state; everything
// else must follow the linear sequence.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled || to == StatusPaymentFailed {
		return true
	}
	return nextStatus[from] == to
}

// Contact is the resolved customer contact, computed once at load time
// from the three historically accreted field sets on the order document.
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID int64              `bson:"user_id" json:"user_id"`
	Items  map[string]int     `bson:"items" json:"items"`
	Total  int                `bson:"total" json:"total"`

	// Contact schema drift: oldest combined string, then separate fields,
	// then customer_* fields. Resolved into Contact by Normalize.
	RawContact      string `bson:"contact,omitempty" json:"-"`
	Name            string `bson:"name,omitempty" json:"-"`
	Phone           string `bson:"phone,omitempty" json:"-"`
	Address         string `bson:"address,omitempty" json:"-"`
	CustomerName    string `bson:"customer_name,omitempty" json:"-"`
	CustomerPhone   string `bson:"customer_phone,omitempty" json:"-"`
	CustomerAddress string `bson:"customer_address,omitempty" json:"-"`

	Delivery string `bson:"delivery" json:"delivery"`
	Time     string `bson:"time" json:"time"`
	Method   string `bson:"method" json:"method"`
	Summary  string `bson:"summary,omitempty" json:"summary,omitempty"`
	Status   Status `bson:"status" json:"status"`

	PaymentVerified      *bool `bson:"payment_verified,omitempty" json:"payment_verified,omitempty"`
	PaymentAmount        *int  `bson:"payment_amount,omitempty" json:"payment_amount,omitempty"`
	RequiresPaymentCheck *bool `bson:"requires_payment_check,omitempty" json:"-"`
	IsPreorder           *bool `bson:"is_preorder,omitempty" json:"is_preorder,omitempty"`

	ClientMessageID *int  `bson:"client_message_id,omitempty" json:"client_message_id,omitempty"`
	SheetSynced     *bool `bson:"sheet_synced,omitempty" json:"sheet_synced,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Derived at load time, never stored.
	Contact           Contact `bson:"-" json:"contact"`
	NeedsPaymentCheck bool    `bson:"-" json:"requires_payment_check"`
}

// Normalize computes the derived fields from whatever schema generation
// the document carries. Repositories call it after decoding.
func (o *Order) Normalize() {
	o.Contact = o.resolveContact()
	o.NeedsPaymentCheck = o.paymentCheckRequired()
}

func (o *Order) resolveContact() Contact {
	var legacy []string
	if o.RawContact != "" {
		for _, part := range strings.Split(o.RawContact, ",") {
			legacy = append(legacy, strings.TrimSpace(part))
		}
	}
	pick := func(latest, separate string, legacyIdx int) string {
		if latest != "" {
			return latest
		}
		if separate != "" {
			return separate
		}
		if legacyIdx < len(legacy) {
			return legacy[legacyIdx]
		}
		return ""
	}
	c := Contact{
		Name:    pick(o.CustomerName, o.Name, 0),
		Phone:   pick(o.CustomerPhone, o.Phone, 1),
		Address: pick(o.CustomerAddress, o.Address, 2),
	}
	// Legacy addresses may themselves contain commas.
	if o.CustomerAddress == "" && o.Address == "" && len(legacy) > 3 {
		c.Address = strings.Join(legacy[2:], ", ")
	}
	return c
}

// IsCardPayment matches the free-text payment method against both the
// Russian and English spellings used by the client bot.
func (o *Order) IsCardPayment() bool {
	m := strings.ToLower(o.Method)
	return strings.Contains(m, "карт") || strings.Contains(m, "card")
}

func (o *Order) paymentCheckRequired() bool {
	if o.RequiresPaymentCheck != nil {
		return *o.RequiresPaymentCheck
	}
	return o.IsCardPayment() && (o.PaymentVerified == nil || !*o.PaymentVerified)
}

func (o *Order) SheetIsSynced() bool {
	return o.SheetSynced != nil && *o.SheetSynced
}
