package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/model"
)

var (
	ErrUserRequired    = model.NewValidationError("user id is required")
	ErrInvalidQuantity = model.NewValidationError("quantity must be at least 1")
)

// TaxPolicy decides the tax line of a cart and whether it is part of a placed order's total.
type TaxPolicy struct {
	Rate                 decimal.Decimal
	IncludedInOrderTotal bool
}

type CartLine struct {
	Item      model.CartItem
	LineTotal decimal.Decimal
}

type CartSummary struct {
	UserID   string
	Lines    []CartLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Version  int
}

type CartService interface {
	Summary(ctx context.Context, userID string) (*CartSummary, error)
	AddProduct(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*CartSummary, error)
	AddPrintJob(ctx context.Context, userID string, spec model.PrintSpecification) (*CartSummary, error)
	RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*CartSummary, error)
	ChangeQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*CartSummary, error)
	PlaceOrder(ctx context.Context, userID, idempotencyKey string) (*model.Order, error)
}

type CartDependencies struct {
	Carts       model.CartRepository
	Products    model.ProductRepository
	Orders      model.OrderRepository
	PrintOrders model.PrintOrderRepository
	Pricer      PrintPricer
	Tax         TaxPolicy
	Dispatcher  EventDispatcher
}

func NewCartService(deps CartDependencies) CartService {
	return &cartService{
		carts:       deps.Carts,
		products:    deps.Products,
		orders:      deps.Orders,
		printOrders: deps.PrintOrders,
		pricer:      deps.Pricer,
		tax:         deps.Tax,
		dispatcher:  deps.Dispatcher,
	}
}

type cartService struct {
	carts       model.CartRepository
	products    model.ProductRepository
	orders      model.OrderRepository
	printOrders model.PrintOrderRepository
	pricer      PrintPricer
	tax         TaxPolicy
	dispatcher  EventDispatcher
}

func (s *cartService) Summary(ctx context.Context, userID string) (*CartSummary, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

func (s *cartService) AddProduct(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*CartSummary, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Find(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock == 0 {
		return nil, model.ErrProductOutOfStock
	}

	var itemID uuid.UUID
	if existing := cart.ProductItem(productID); existing != nil {
		existing.Quantity += quantity
		itemID = existing.ID
	} else {
		itemID, err = s.carts.NextID()
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, &model.ProductCartItem{ID: itemID, Quantity: quantity, Product: *product})
	}

	if err := s.storeCart(ctx, cart); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemAddedToCart{UserID: userID, ItemID: itemID, ItemType: model.ProductItem})
	return s.summarize(cart), nil
}

func (s *cartService) AddPrintJob(ctx context.Context, userID string, spec model.PrintSpecification) (*CartSummary, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobID, err := s.printOrders.NextID()
	if err != nil {
		return nil, err
	}
	itemID, err := s.carts.NextID()
	if err != nil {
		return nil, err
	}

	job := model.PrintOrder{
		PrintSpecification: spec,
		ID:                 jobID,
		UserID:             userID,
		Status:             model.PrintPending,
		OrderDate:          time.Now().UTC(),
		Version:            1,
	}
	if price, ok := s.pricer.Estimate(spec); ok {
		job.EstimatedPrice = &price
	}
	cart.Items = append(cart.Items, &model.PrintCartItem{ID: itemID, PrintJob: job})

	if err := s.storeCart(ctx, cart); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemAddedToCart{UserID: userID, ItemID: itemID, ItemType: model.PrintItem})
	return s.summarize(cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*CartSummary, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := cart.IndexOf(itemID)
	if index == -1 {
		return nil, model.ErrCartItemNotFound
	}
	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)

	if err := s.storeCart(ctx, cart); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemRemovedFromCart{UserID: userID, ItemID: itemID})
	return s.summarize(cart), nil
}

// ChangeQuantity ignores quantities below 1 and leaves the cart as it is.
func (s *cartService) ChangeQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*CartSummary, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := cart.IndexOf(itemID)
	if index == -1 {
		return nil, model.ErrCartItemNotFound
	}
	if quantity < 1 {
		return s.summarize(cart), nil
	}

	var oldQuantity int
	switch item := cart.Items[index].(type) {
	case *model.ProductCartItem:
		oldQuantity = item.Quantity
		item.Quantity = quantity
	case *model.PrintCartItem:
		return nil, model.ErrQuantityNotAdjustable
	default:
		return nil, model.ErrUnknownCartItemType
	}

	if err := s.storeCart(ctx, cart); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CartItemQuantityChanged{
		UserID:      userID,
		ItemID:      itemID,
		OldQuantity: oldQuantity,
		NewQuantity: quantity,
	})
	return s.summarize(cart), nil
}

func (s *cartService) PlaceOrder(ctx context.Context, userID, idempotencyKey string) (*model.Order, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	if idempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, userID, idempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, model.ErrCartIsEmpty
	}
	snapshot := cart.Clone()

	summary := s.summarize(cart)
	total := summary.Subtotal
	if s.tax.IncludedInOrderTotal {
		total = summary.Total
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}
	orderNumber, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}
	order := &model.Order{
		ID:             orderID,
		OrderNumber:    orderNumber,
		UserID:         userID,
		Items:          snapshot.Items,
		TotalAmount:    total,
		Status:         model.Pending,
		OrderDate:      time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}

	// Clearing first claims the snapshot: a concurrent cart write makes this fail before anything is stored.
	cart.Items = nil
	if err := s.storeCart(ctx, cart); err != nil {
		return nil, err
	}

	if err := s.persistOrder(ctx, order); err != nil {
		snapshot.Version = cart.Version
		if restoreErr := s.storeCart(ctx, snapshot); restoreErr != nil {
			return nil, errors.Wrapf(err, "cart of %s could not be restored: %v", userID, restoreErr)
		}
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      userID,
		TotalAmount: order.TotalAmount,
	})
	return order, nil
}

// persistOrder stores the order together with its print jobs. Stores without transactions get the
// jobs queued first and taken off the queue again if a later write fails.
func (s *cartService) persistOrder(ctx context.Context, order *model.Order) error {
	var jobs []model.PrintOrder
	for _, item := range order.Items {
		if printItem, ok := item.(*model.PrintCartItem); ok {
			jobs = append(jobs, printItem.PrintJob)
		}
	}

	if writer, ok := s.orders.(model.AtomicOrderWriter); ok {
		if err := writer.CreateWithPrintJobs(ctx, order, jobs); err != nil {
			return err
		}
	} else if err := s.createOrderAndQueue(ctx, order, jobs); err != nil {
		return err
	}

	for _, job := range jobs {
		_ = s.dispatcher.Dispatch(model.PrintOrderQueued{PrintOrderID: job.ID, UserID: job.UserID, FileName: job.FileName})
	}
	return nil
}

func (s *cartService) createOrderAndQueue(ctx context.Context, order *model.Order, jobs []model.PrintOrder) error {
	queued := make([]model.PrintOrder, 0, len(jobs))
	for _, job := range jobs {
		job := job
		err := s.printOrders.Create(ctx, &job)
		// A duplicate id is the same job left behind by an earlier attempt of this checkout.
		if err != nil && !errors.Is(err, model.ErrDuplicatePrintOrder) {
			s.unqueue(ctx, queued)
			return errors.Wrapf(err, "queue print job %s", job.ID)
		}
		queued = append(queued, job)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.unqueue(ctx, queued)
		return err
	}
	return nil
}

func (s *cartService) unqueue(ctx context.Context, jobs []model.PrintOrder) {
	for _, job := range jobs {
		if err := s.printOrders.Delete(ctx, job.ID); err != nil && !errors.Is(err, model.ErrPrintOrderNotFound) {
			log.WithError(err).WithField("printOrder", job.ID).Warn("failed to take print job off the queue")
		}
	}
}

func (s *cartService) findCart(ctx context.Context, userID string) (*model.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	return s.carts.Find(ctx, userID)
}

func (s *cartService) storeCart(ctx context.Context, cart *model.Cart) error {
	cart.Version++
	return s.carts.Store(ctx, cart)
}

func (s *cartService) summarize(cart *model.Cart) *CartSummary {
	lines := make([]CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, CartLine{Item: item, LineTotal: model.LineTotal(item)})
	}
	subtotal := cart.Subtotal()
	tax := subtotal.Mul(s.tax.Rate)
	return &CartSummary{
		UserID:   cart.UserID,
		Lines:    lines,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
		Version:  cart.Version,
	}
}
