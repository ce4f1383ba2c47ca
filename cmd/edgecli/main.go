package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edge/client/internal/application/livesync"
	"github.com/edge/client/internal/application/workflow"
	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
	"github.com/edge/client/internal/infrastructure/cache"
	"github.com/edge/client/internal/infrastructure/config"
	"github.com/edge/client/internal/infrastructure/event"
	"github.com/edge/client/internal/infrastructure/gateway"
	"github.com/edge/client/internal/infrastructure/logger"
	"github.com/edge/client/internal/infrastructure/persistence"
)

// entityGateways is the per-entity surface the workflow consumes, satisfied
// by both the REST client and the local store.
type entityGateways struct {
	orders    order.Gateway
	customers partner.CustomerGateway
	addresses partner.AddressGateway
	products  catalog.ProductGateway
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting edge client",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("gateway", cfg.Gateway.Mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gws, cleanup, err := buildGateways(cfg, log)
	if err != nil {
		log.Fatal("Failed to build entity gateways", zap.Error(err))
	}
	defer cleanup()

	guard, err := buildGuard(cfg)
	if err != nil {
		log.Fatal("Failed to build draft creation guard", zap.Error(err))
	}
	defer guard.Close()

	// Event bus carrying push events to the live update reconciler
	bus := event.NewInMemoryEventBus(log)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = bus.Stop(context.Background())
	}()

	reconciler := livesync.NewReconciler(log)
	bus.Subscribe(reconciler, reconciler.EventTypes()...)

	orderList := livesync.NewListView(func(o *order.Order) string { return o.ID })
	unbind := livesync.Bind(reconciler, "order", orderList)
	defer unbind()

	if err := runLifecycle(ctx, log, gws, guard, bus, orderList); err != nil {
		log.Fatal("Order lifecycle failed", zap.Error(err))
	}

	log.Info("Order lifecycle completed")
}

// buildGateways selects the entity gateway implementation for the configured
// mode. In local mode the database is migrated and seeded with demo data so
// the lifecycle has a catalog and a customer to work with.
func buildGateways(cfg *config.Config, log *zap.Logger) (*entityGateways, func(), error) {
	if cfg.Gateway.Mode == "rest" {
		client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, log)
		all := gateway.NewGateways(client)
		return &entityGateways{
			orders:    all.Orders,
			customers: all.Customers,
			addresses: all.Addresses,
			products:  all.Products,
		}, func() {}, nil
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	stores := persistence.NewStores(db.DB)
	if err := seedDemoData(context.Background(), stores); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}
	return &entityGateways{
		orders:    stores.Orders,
		customers: stores.Customers,
		addresses: stores.Addresses,
		products:  stores.Products,
	}, cleanup, nil
}

// buildGuard returns the cross-process draft creation guard. Without Redis
// the in-memory store still collapses duplicate creates within this process.
func buildGuard(cfg *config.Config) (shared.IdempotencyStore, error) {
	if !cfg.Redis.Enabled {
		return cache.NewInMemoryIdempotencyStore(), nil
	}
	return cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// seedDemoData makes sure the local store has a customer with addresses and
// an active product. Safe to run repeatedly.
func seedDemoData(ctx context.Context, stores *persistence.Stores) error {
	customers, err := stores.Customers.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(customers) > 0 {
		return nil
	}

	shipping, err := stores.Addresses.Create(ctx, &partner.Address{
		AddressType:    partner.AddressTypeShipping,
		StreetAddress1: "1-2-3 Umeda",
		City:           "Osaka",
		PostalCode:     "530-0001",
		Country:        "JP",
	})
	if err != nil {
		return err
	}
	billing, err := stores.Addresses.Create(ctx, &partner.Address{
		AddressType:    partner.AddressTypeBilling,
		StreetAddress1: "4-5-6 Marunouchi",
		City:           "Tokyo",
		PostalCode:     "100-0005",
		Country:        "JP",
	})
	if err != nil {
		return err
	}

	customer := &partner.Customer{
		CompanyName: "Acme Trading",
		Email:       "orders@acme.example",
	}
	partner.AddAddress(customer, shipping.ID)
	partner.AddAddress(customer, billing.ID)
	if _, err := stores.Customers.Create(ctx, customer); err != nil {
		return err
	}

	products := []catalog.Product{
		{ProductCode: "WGT-001", ProductName: "Widget", UnitPrice: decimal.RequireFromString("25.00"), Active: true},
		{ProductCode: "GDT-001", ProductName: "Gadget", UnitPrice: decimal.RequireFromString("12.50"), Active: true},
	}
	for i := range products {
		if _, err := stores.Products.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// runLifecycle drives one order from draft to invoiced through the workflow
// session, then pushes the final snapshot through the reconciler so the list
// view picks it up.
func runLifecycle(
	ctx context.Context,
	log *zap.Logger,
	gws *entityGateways,
	guard shared.IdempotencyStore,
	bus *event.InMemoryEventBus,
	orderList *livesync.ListView[order.Order],
) error {
	drafts := workflow.NewDraftManager(gws.orders, guard, log)
	journal := workflow.NewJournal(gws.orders, log)
	session := workflow.NewSession(gws.orders, gws.customers, drafts, journal, log, "")

	if err := session.Start(ctx); err != nil {
		return err
	}
	defer session.Close(context.Background())

	customers, err := gws.customers.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		return shared.NewDomainError("NO_CUSTOMERS", "No customers available for the lifecycle run")
	}
	customer := customers[0]

	products, err := gws.products.FetchActive(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return shared.NewDomainError("NO_PRODUCTS", "No active products available for the lifecycle run")
	}

	// Entry
	if err := session.SelectCustomer(ctx, customer.ID); err != nil {
		return err
	}
	if err := session.AddProduct(ctx, products[0].ID, 2); err != nil {
		return err
	}

	addresses, err := gws.addresses.FetchByCustomer(ctx, customer.ID)
	if err != nil {
		return err
	}
	shippingID, billingID := pickAddresses(addresses)
	if err := session.SetAddresses(ctx, shippingID, billingID); err != nil {
		return err
	}
	if err := session.CompleteEntry(ctx); err != nil {
		return err
	}

	// Approval and confirmation
	session.SetApprovalChecks(true, true, true)
	session.SetApprovalNotes("Checked against the credit file")
	if err := session.Approve(ctx); err != nil {
		return err
	}
	if err := session.Confirm(ctx); err != nil {
		return err
	}

	// Shipping
	session.SetShippingInstructions("Standard carrier, no partial delivery")
	session.SetRequestedShipDate(time.Now().AddDate(0, 0, 7))
	if err := session.InstructShipping(ctx); err != nil {
		return err
	}
	session.SetShipDate(time.Now())
	session.SetTrackingNumber("TRK-0001")
	if err := session.Ship(ctx); err != nil {
		return err
	}

	// Invoicing
	invoiceNumber, err := session.FetchNextInvoiceNumber(ctx)
	if err != nil {
		return err
	}
	session.SetInvoiceNumber(invoiceNumber)
	session.SetInvoiceDate(time.Now())
	if err := session.Invoice(ctx); err != nil {
		return err
	}

	final := session.Order()
	log.Info("Order invoiced",
		zap.String("orderId", final.ID),
		zap.String("orderNumber", final.OrderNumber),
		zap.String("invoiceNumber", final.InvoiceNumber),
		zap.String("total", final.Total.String()),
		zap.Int("journalRecords", len(session.Records())),
	)

	// Propagate the final snapshot the way a server push would
	if err := bus.Publish(ctx, livesync.NewEntityUpdated("order", final.ID, final)); err != nil {
		return err
	}
	// Dispatch is asynchronous
	time.Sleep(100 * time.Millisecond)
	log.Info("List view reconciled", zap.Int("orders", len(orderList.Items())))

	return nil
}

// pickAddresses chooses shipping and billing ids from the customer's
// addresses, falling back to the first one for both roles
func pickAddresses(addresses []partner.Address) (string, string) {
	if len(addresses) == 0 {
		return "", ""
	}
	shipping, billing := addresses[0].ID, addresses[0].ID
	for _, a := range addresses {
		switch a.AddressType {
		case partner.AddressTypeShipping:
			shipping = a.ID
		case partner.AddressTypeBilling:
			billing = a.ID
		}
	}
	return shipping, billing
}
