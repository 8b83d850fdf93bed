package court

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

// PriceUnit is the billing unit a court's price applies to.
type PriceUnit string

const (
	PricePerHour    PriceUnit = "hour"
	PricePerSession PriceUnit = "session"
	PricePerDay     PriceUnit = "day"
)

// Slot is a fixed start/end time window a court can be booked for.
// Identity within one court is the (StartTime, EndTime) pair; Available
// flips when the backend approves, rejects or cancels a booking.
type Slot struct {
	StartTime string `json:"start_time"` // HH:mm, 24h
	EndTime   string `json:"end_time"`   // HH:mm, 24h
	Available bool   `json:"available"`
}

// SameWindow reports whether two slots cover the same time window.
func (s Slot) SameWindow(o Slot) bool {
	return s.StartTime == o.StartTime && s.EndTime == o.EndTime
}

// Label renders the slot as "HH:mm-HH:mm" for display and logging.
func (s Slot) Label() string {
	return s.StartTime + "-" + s.EndTime
}

func validateSlot(s Slot) error {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q", s.StartTime)
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q", s.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("slot %s must end after it starts", s.Label())
	}
	return nil
}

// Court is the aggregate root for a bookable court and its slot inventory.
type Court struct {
	id         uuid.UUID
	name       string
	sportType  string
	priceCents int64
	priceUnit  PriceUnit
	slots      []Slot
	createdAt  time.Time
	updatedAt  time.Time
}

// NewCourt creates a court with a validated slot inventory.
func NewCourt(name, sportType string, priceCents int64, priceUnit PriceUnit, slots []Slot) (*Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("court name is required")
	}
	if sportType == "" {
		return nil, domain.NewValidationError("sport type is required")
	}
	if priceCents <= 0 {
		return nil, domain.NewValidationError("price must be positive")
	}
	switch priceUnit {
	case PricePerHour, PricePerSession, PricePerDay:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid price unit: %s", priceUnit))
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Court{
		id:         uuid.New(),
		name:       name,
		sportType:  sportType,
		priceCents: priceCents,
		priceUnit:  priceUnit,
		slots:      append([]Slot(nil), slots...),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func validateSlots(slots []Slot) error {
	if len(slots) == 0 {
		return domain.NewValidationError("at least one slot is required")
	}
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if err := validateSlot(s); err != nil {
			return domain.NewValidationError(err.Error())
		}
		key := s.Label()
		if _, dup := seen[key]; dup {
			return domain.NewValidationError(fmt.Sprintf("duplicate slot %s", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Reconstruct rebuilds a Court from persistence.
func Reconstruct(id uuid.UUID, name, sportType string, priceCents int64, priceUnit PriceUnit, slots []Slot, createdAt, updatedAt time.Time) *Court {
	return &Court{
		id: id, name: name, sportType: sportType,
		priceCents: priceCents, priceUnit: priceUnit, slots: slots,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// AvailableSlots returns the currently bookable slots in catalog order.
// The result is a copy; an empty inventory yields an empty slice.
func (c *Court) AvailableSlots() []Slot {
	available := make([]Slot, 0, len(c.slots))
	for _, s := range c.slots {
		if s.Available {
			available = append(available, s)
		}
	}
	return available
}

// HasAvailableSlot reports whether the given window is currently bookable.
func (c *Court) HasAvailableSlot(slot Slot) bool {
	for _, s := range c.slots {
		if s.SameWindow(slot) {
			return s.Available
		}
	}
	return false
}

// SetSlotAvailability flips the availability of the matched windows.
// Unknown windows are an error so a stale snapshot cannot silently no-op.
func (c *Court) SetSlotAvailability(slots []Slot, available bool) error {
	for _, target := range slots {
		found := false
		for i := range c.slots {
			if c.slots[i].SameWindow(target) {
				c.slots[i].Available = available
				found = true
				break
			}
		}
		if !found {
			return domain.NewConflictError(fmt.Sprintf("slot %s no longer exists on court %s", target.Label(), c.name))
		}
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

// Update replaces the court's editable attributes.
func (c *Court) Update(name, sportType string, priceCents int64, priceUnit PriceUnit, slots []Slot) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("court name is required")
	}
	if priceCents <= 0 {
		return domain.NewValidationError("price must be positive")
	}
	switch priceUnit {
	case PricePerHour, PricePerSession, PricePerDay:
	default:
		return domain.NewValidationError(fmt.Sprintf("invalid price unit: %s", priceUnit))
	}
	if err := validateSlots(slots); err != nil {
		return err
	}

	c.name = name
	c.sportType = sportType
	c.priceCents = priceCents
	c.priceUnit = priceUnit
	c.slots = append([]Slot(nil), slots...)
	c.updatedAt = time.Now().UTC()
	return nil
}

// Getters.
func (c *Court) ID() uuid.UUID        { return c.id }
func (c *Court) Name() string         { return c.name }
func (c *Court) SportType() string    { return c.sportType }
func (c *Court) PriceCents() int64    { return c.priceCents }
func (c *Court) PriceUnit() PriceUnit { return c.priceUnit }
func (c *Court) Slots() []Slot        { return append([]Slot(nil), c.slots...) }
func (c *Court) CreatedAt() time.Time { return c.createdAt }
func (c *Court) UpdatedAt() time.Time { return c.updatedAt }
