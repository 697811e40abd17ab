package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/internal/bulkorder"
	"github.com/dannysckt/storefront-backend/internal/cart"
	"github.com/dannysckt/storefront-backend/internal/orders"
	"github.com/dannysckt/storefront-backend/pkg/db/models"
	"github.com/dannysckt/storefront-backend/pkg/enums"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
	"github.com/dannysckt/storefront-backend/pkg/stripe"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type submitGuard interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	CheckoutGuardKey(userID string) string
}

type cartSource interface {
	Load(ctx context.Context, userID string) (*cart.Cart, error)
	Delete(ctx context.Context, userID string) error
}

type bulkBuilder interface {
	BuildSubmission(ctx context.Context, userID uuid.UUID, selections []bulkorder.Selection) (*bulkorder.Submission, error)
}

type paymentGateway interface {
	CreatePaymentIntent(ctx context.Context, input stripe.CreateIntentInput) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

type productFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Config carries the checkout tunables.
type Config struct {
	Currency       enums.Currency
	SubmitGuardTTL time.Duration
}

// Service runs the checkout submission lifecycle.
type Service interface {
	SubmitCart(ctx context.Context, userID uuid.UUID, input SubmitInput) (*SubmissionResult, error)
	SubmitBulkOrder(ctx context.Context, userID uuid.UUID, input SubmitInput, selections []bulkorder.Selection) (*SubmissionResult, error)
	Confirm(ctx context.Context, userID, orderID uuid.UUID) (*ConfirmResult, error)
}

type service struct {
	tx       txRunner
	guard    submitGuard
	repo     orders.Repository
	carts    cartSource
	bulk     bulkBuilder
	gateway  paymentGateway
	products productFinder
	cfg      Config
	logg     *logger.Logger
}

// NewService wires the checkout pipeline.
func NewService(
	tx txRunner,
	guard submitGuard,
	repo orders.Repository,
	carts cartSource,
	bulk bulkBuilder,
	gateway paymentGateway,
	products productFinder,
	cfg Config,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if guard == nil {
		return nil, fmt.Errorf("submit guard required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if bulk == nil {
		return nil, fmt.Errorf("bulk order builder required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if !cfg.Currency.IsValid() {
		return nil, fmt.Errorf("invalid checkout currency %q", cfg.Currency)
	}
	if cfg.SubmitGuardTTL <= 0 {
		return nil, fmt.Errorf("submit guard ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:       tx,
		guard:    guard,
		repo:     repo,
		carts:    carts,
		bulk:     bulk,
		gateway:  gateway,
		products: products,
		cfg:      cfg,
		logg:     logg,
	}, nil
}

type orderLine struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// SubmitCart turns the session cart into a pending order with a payment
// intent. The cart is cleared only after the intent exists.
func (s *service) SubmitCart(ctx context.Context, userID uuid.UUID, input SubmitInput) (*SubmissionResult, error) {
	sessionCart, err := s.carts.Load(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	if sessionCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyOrder, "cart is empty")
	}

	lines := make([]orderLine, 0, len(sessionCart.Items))
	for _, item := range sessionCart.Items {
		lines = append(lines, orderLine{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	result, err := s.submit(ctx, userID, input, lines, sessionCart.SubtotalCents(), false)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, userID.String()); err != nil {
		// the order exists and payment is pending, so only log the leak
		s.logg.Warn(ctx, fmt.Sprintf("failed to clear cart after submission: %v", err))
	}
	return result, nil
}

// SubmitBulkOrder validates the selections against the server-side order
// sheet and submits the discounted order.
func (s *service) SubmitBulkOrder(ctx context.Context, userID uuid.UUID, input SubmitInput, selections []bulkorder.Selection) (*SubmissionResult, error) {
	submission, err := s.bulk.BuildSubmission(ctx, userID, selections)
	if err != nil {
		return nil, err
	}

	lines := make([]orderLine, 0, len(submission.Lines))
	for _, line := range submission.Lines {
		lines = append(lines, orderLine{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}

	return s.submit(ctx, userID, input, lines, submission.GrandTotalCents, true)
}

func (s *service) submit(ctx context.Context, userID uuid.UUID, input SubmitInput, lines []orderLine, totalCents int64, isBulk bool) (*SubmissionResult, error) {
	submission := NewSubmission()
	if err := submission.Advance(StateSubmitting); err != nil {
		return nil, err
	}

	guardKey := s.guard.CheckoutGuardKey(userID.String())
	acquired, err := s.guard.SetNX(ctx, guardKey, "1", s.cfg.SubmitGuardTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquiring submit guard")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a checkout is already in progress")
	}
	defer func() {
		if delErr := s.guard.Del(context.WithoutCancel(ctx), guardKey); delErr != nil {
			s.logg.Warn(ctx, fmt.Sprintf("failed to release submit guard: %v", delErr))
		}
	}()

	order, err := s.persistOrder(ctx, userID, input, lines, totalCents, isBulk)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, stripe.CreateIntentInput{
		AmountCents: totalCents,
		Currency:    string(s.cfg.Currency),
		CustomerRef: userID.String(),
		OrderID:     order.ID.String(),
	})
	if err != nil {
		return nil, s.failAfterPersist(ctx, submission, order, lines, err)
	}

	bg := context.WithoutCancel(ctx)
	if err := s.repo.UpdatePayment(bg, order.ID, map[string]any{
		"provider_intent_id": intent.ID,
		"status":             enums.PaymentStatusAwaitingConfirmation,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording payment intent")
	}

	if err := submission.Advance(StateAwaitingPayment); err != nil {
		return nil, err
	}

	s.logg.Info(ctx, fmt.Sprintf("checkout submitted order=%s amount=%d bulk=%t", order.ID, totalCents, isBulk))
	return &SubmissionResult{
		OrderID:      order.ID,
		State:        submission.State(),
		AmountCents:  totalCents,
		Currency:     string(s.cfg.Currency),
		ClientSecret: intent.ClientSecret,
	}, nil
}

// persistOrder re-checks stock and creates the order atomically. Any short
// line aborts the whole transaction.
func (s *service) persistOrder(ctx context.Context, userID uuid.UUID, input SubmitInput, lines []orderLine, totalCents int64, isBulk bool) (*models.Order, error) {
	var order *models.Order
	var shortLines []uuid.UUID

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, line := range lines {
			ok, err := repo.ReserveStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				shortLines = append(shortLines, line.ProductID)
			}
		}
		if len(shortLines) > 0 {
			return pkgerrors.New(pkgerrors.CodeStockUnavailable, "stock changed while checking out")
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				ProductID:      line.ProductID,
				Name:           line.Name,
				UnitPriceCents: line.UnitPriceCents,
				Quantity:       line.Quantity,
				LineTotalCents: line.UnitPriceCents * int64(line.Quantity),
			})
		}

		created, err := repo.CreateOrder(ctx, &models.Order{
			UserID:          userID,
			Status:          enums.OrderStatusPending,
			IsBulk:          isBulk,
			Currency:        s.cfg.Currency,
			TotalCents:      totalCents,
			ShippingAddress: input.ShippingAddress,
			Notes:           input.Notes,
			Items:           items,
			Payment: &models.PaymentRecord{
				AmountCents: totalCents,
				Currency:    s.cfg.Currency,
				Status:      enums.PaymentStatusPending,
			},
		})
		if err != nil {
			return err
		}
		order = created
		return nil
	})

	if txErr != nil {
		if pkgerrors.HasCode(txErr, pkgerrors.CodeStockUnavailable) {
			return nil, s.stockUnavailable(ctx, lines, shortLines)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "persisting order")
	}
	return order, nil
}

// stockUnavailable rebuilds the offending lines with current availability for
// the error payload.
func (s *service) stockUnavailable(ctx context.Context, lines []orderLine, shortIDs []uuid.UUID) error {
	available := map[uuid.UUID]int{}
	if products, err := s.products.FindByIDs(ctx, shortIDs); err == nil {
		for _, p := range products {
			available[p.ID] = p.StockQuantity
		}
	}

	details := make([]map[string]any, 0, len(shortIDs))
	for _, id := range shortIDs {
		detail := map[string]any{"product_id": id, "available": available[id]}
		for _, line := range lines {
			if line.ProductID == id {
				detail["name"] = line.Name
				detail["requested"] = line.Quantity
				break
			}
		}
		details = append(details, detail)
	}

	return pkgerrors.New(pkgerrors.CodeStockUnavailable, "stock changed while checking out").
		WithDetails(map[string]any{"lines": details})
}

// failAfterPersist rolls the persisted order into a terminal state once the
// gateway call fails or the caller walks away.
func (s *service) failAfterPersist(ctx context.Context, submission *Submission, order *models.Order, lines []orderLine, cause error) error {
	bg := context.WithoutCancel(ctx)

	for _, line := range lines {
		if err := s.repo.RestoreStock(bg, line.ProductID, line.Quantity); err != nil {
			s.logg.Error(bg, fmt.Sprintf("failed to restore stock for product %s", line.ProductID), err)
		}
	}

	cancelled := errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded)

	orderStatus := enums.OrderStatusFailed
	paymentStatus := enums.PaymentStatusFailed
	nextState := StateFailed
	if cancelled {
		orderStatus = enums.OrderStatusCancelled
		paymentStatus = enums.PaymentStatusCancelled
		nextState = StateCancelled
	}

	if err := s.repo.UpdateOrderStatus(bg, order.ID, orderStatus); err != nil {
		s.logg.Error(bg, "failed to mark order after gateway failure", err)
	}
	reason := cause.Error()
	if err := s.repo.UpdatePayment(bg, order.ID, map[string]any{
		"status":         paymentStatus,
		"failure_reason": reason,
	}); err != nil {
		s.logg.Error(bg, "failed to mark payment after gateway failure", err)
	}

	if err := submission.Advance(nextState); err != nil {
		s.logg.Error(bg, "invalid submission transition", err)
	}

	if cancelled {
		return pkgerrors.Wrap(pkgerrors.CodeCancelled, cause, "checkout cancelled before payment intent")
	}
	return pkgerrors.Wrap(pkgerrors.CodeGateway, cause, "creating payment intent")
}

// Confirm polls the gateway for the intent state and settles the order. It is
// safe to call repeatedly; terminal orders just report their state.
func (s *service) Confirm(ctx context.Context, userID, orderID uuid.UUID) (*ConfirmResult, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Payment == nil || order.Payment.ProviderIntentID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order has no payment intent")
	}

	if order.Payment.Status != enums.PaymentStatusAwaitingConfirmation {
		return s.confirmResult(order), nil
	}

	intent, err := s.gateway.RetrievePaymentIntent(ctx, *order.Payment.ProviderIntentID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeCancelled, err, "confirmation cancelled")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeGateway, err, "retrieving payment intent")
	}

	switch intent.Status {
	case "succeeded":
		if err := s.settle(ctx, order, enums.OrderStatusPaid, enums.PaymentStatusSucceeded, nil); err != nil {
			return nil, err
		}
	case "canceled":
		if err := s.settle(ctx, order, enums.OrderStatusCancelled, enums.PaymentStatusCancelled, nil); err != nil {
			return nil, err
		}
		s.restoreOrderStock(ctx, order)
	case "requires_payment_method":
		reason := "payment attempt failed"
		if err := s.settle(ctx, order, enums.OrderStatusFailed, enums.PaymentStatusFailed, &reason); err != nil {
			return nil, err
		}
		s.restoreOrderStock(ctx, order)
	default:
		// processing / requires_action / requires_confirmation: still pending
	}

	return s.confirmResult(order), nil
}

func (s *service) settle(ctx context.Context, order *models.Order, orderStatus enums.OrderStatus, paymentStatus enums.PaymentStatus, failureReason *string) error {
	if err := s.repo.UpdateOrderStatus(ctx, order.ID, orderStatus); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	updates := map[string]any{"status": paymentStatus}
	if failureReason != nil {
		updates["failure_reason"] = *failureReason
	}
	if err := s.repo.UpdatePayment(ctx, order.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating payment status")
	}
	order.Status = orderStatus
	order.Payment.Status = paymentStatus
	return nil
}

func (s *service) restoreOrderStock(ctx context.Context, order *models.Order) {
	bg := context.WithoutCancel(ctx)
	for _, item := range order.Items {
		if err := s.repo.RestoreStock(bg, item.ProductID, item.Quantity); err != nil {
			s.logg.Error(bg, fmt.Sprintf("failed to restore stock for product %s", item.ProductID), err)
		}
	}
}

func (s *service) confirmResult(order *models.Order) *ConfirmResult {
	state := StateAwaitingPayment
	switch order.Status {
	case enums.OrderStatusPaid:
		state = StateCompleted
	case enums.OrderStatusCancelled:
		state = StateCancelled
	case enums.OrderStatusFailed:
		state = StateFailed
	}
	return &ConfirmResult{
		OrderID:       order.ID,
		State:         state,
		OrderStatus:   string(order.Status),
		PaymentStatus: string(order.Payment.Status),
	}
}
