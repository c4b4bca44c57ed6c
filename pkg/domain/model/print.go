package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPrintOrderNotFound  = errors.New("print order not found")
	ErrIllegalTransition   = errors.New("print order status transition is not allowed")
	ErrUnknownPrintStatus  = errors.New("unknown print order status")
	ErrPrintOptimisticLock = errors.New("print order has been modified by another transaction")
	ErrDuplicatePrintOrder = errors.New("print order with this id is already queued")
)

type PaperSize string

const (
	PaperA4     PaperSize = "A4"
	PaperA3     PaperSize = "A3"
	PaperLetter PaperSize = "Letter"
)

func (s PaperSize) Valid() bool {
	switch s {
	case PaperA4, PaperA3, PaperLetter:
		return true
	}
	return false
}

type ColorMode string

const (
	BlackAndWhite ColorMode = "Black & White"
	Color         ColorMode = "Color"
)

func (c ColorMode) Valid() bool {
	return c == BlackAndWhite || c == Color
}

type PrintSpecification struct {
	FileName  string    `json:"fileName" db:"file_name"`
	Copies    int       `json:"copies" db:"copies"`
	PaperSize PaperSize `json:"paperSize" db:"paper_size"`
	Color     ColorMode `json:"color" db:"color"`
	TwoSided  bool      `json:"twoSided" db:"two_sided"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
}

// Complete reports whether the specification carries enough to be priced.
func (s PrintSpecification) Complete() bool {
	return strings.TrimSpace(s.FileName) != "" && s.Copies > 0
}

func (s PrintSpecification) Validate() error {
	if strings.TrimSpace(s.FileName) == "" {
		return NewValidationError("file name is required")
	}
	if s.Copies <= 0 {
		return NewValidationError("number of copies must be greater than 0")
	}
	if !s.PaperSize.Valid() {
		return NewValidationError("paper size must be one of A4, A3, Letter")
	}
	if !s.Color.Valid() {
		return NewValidationError("color must be either \"Black & White\" or \"Color\"")
	}
	return nil
}

type PrintOrderStatus string

const (
	PrintPending        PrintOrderStatus = "Pending"
	PrintPrinting       PrintOrderStatus = "Printing"
	PrintReadyForPickup PrintOrderStatus = "Ready for Pickup"
	PrintCompleted      PrintOrderStatus = "Completed"
	PrintCancelled      PrintOrderStatus = "Cancelled"
)

var PrintOrderStatuses = []PrintOrderStatus{
	PrintPending,
	PrintPrinting,
	PrintReadyForPickup,
	PrintCompleted,
	PrintCancelled,
}

// printTransitions is the complete set of admin-initiated moves. Terminal states map to nothing.
var printTransitions = map[PrintOrderStatus][]PrintOrderStatus{
	PrintPending:        {PrintPrinting, PrintCancelled},
	PrintPrinting:       {PrintReadyForPickup, PrintCancelled},
	PrintReadyForPickup: {PrintCompleted, PrintCancelled},
	PrintCompleted:      nil,
	PrintCancelled:      nil,
}

func ParsePrintOrderStatus(raw string) (PrintOrderStatus, error) {
	for _, status := range PrintOrderStatuses {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", ErrUnknownPrintStatus
}

func (s PrintOrderStatus) String() string { return string(s) }

func (s PrintOrderStatus) Terminal() bool {
	return len(printTransitions[s]) == 0
}

// NextStatuses returns a copy of the legal next states of s.
func (s PrintOrderStatus) NextStatuses() []PrintOrderStatus {
	next := printTransitions[s]
	out := make([]PrintOrderStatus, len(next))
	copy(out, next)
	return out
}

func (s PrintOrderStatus) CanTransitionTo(to PrintOrderStatus) bool {
	for _, next := range printTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PrintOrder struct {
	PrintSpecification
	ID             uuid.UUID        `json:"id" db:"id"`
	UserID         string           `json:"userId" db:"user_id"`
	Status         PrintOrderStatus `json:"status" db:"status"`
	OrderDate      time.Time        `json:"orderDate" db:"order_date"`
	EstimatedPrice *decimal.Decimal `json:"estimatedPrice,omitempty" db:"estimated_price"`
	Version        int              `json:"version" db:"version"`
}

// TransitionTo overwrites the status when the table allows it and bumps the version.
func (o *PrintOrder) TransitionTo(to PrintOrderStatus) error {
	if !o.Status.CanTransitionTo(to) {
		return ErrIllegalTransition
	}
	o.Status = to
	o.Version++
	return nil
}

type PrintOrderFilter struct {
	// Status is empty for all statuses.
	Status PrintOrderStatus
	UserID string
}

func (f PrintOrderFilter) Match(o PrintOrder) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	return true
}

type PrintOrderRepository interface {
	NextID() (uuid.UUID, error)
	// Create fails with ErrDuplicatePrintOrder when the id is already queued.
	Create(ctx context.Context, order *PrintOrder) error
	// Update stores order when the persisted version equals order.Version-1.
	Update(ctx context.Context, order *PrintOrder) error
	Find(ctx context.Context, id uuid.UUID) (*PrintOrder, error)
	List(ctx context.Context, filter PrintOrderFilter) ([]PrintOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
