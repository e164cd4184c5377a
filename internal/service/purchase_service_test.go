package service_test

import (
	"context"
	"testing"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/service"
	"almacen/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPurchaseSvc() (service.PurchaseService, *stubPurchaseRepo, *stubSupplierRepo, *stubProductRepo, *stubCategoryRepo) {
	prodRepo := newStubProductRepo()
	purRepo := newStubPurchaseRepo(prodRepo)
	supRepo := newStubSupplierRepo()
	catRepo := newStubCategoryRepo()
	// nil redis: enqueueing is not exercised in these tests
	svc := service.NewPurchaseService(purRepo, supRepo, prodRepo, worker.NewDispatcher(nil))
	return svc, purRepo, supRepo, prodRepo, catRepo
}

func seedSupplier(repo *stubSupplierRepo, name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), Name: name}
	repo.suppliers[s.ID] = s
	return s
}

func TestItemSubtotal(t *testing.T) {
	p := model.Product{PurchasePrice: dec("12.50")}
	assert.True(t, service.ItemSubtotal(p, 3).Equal(dec("37.50")))
}

func TestPurchaseTotalWithTax(t *testing.T) {
	colaID, aguaID := uuid.New(), uuid.New()
	cola := &model.Product{ID: colaID, PurchasePrice: dec("10.00")}
	agua := &model.Product{ID: aguaID, PurchasePrice: dec("17.50")}
	items := []model.PurchaseItem{
		{ProductID: colaID, Quantity: 2, Product: cola},
		{ProductID: aguaID, Quantity: 1, Product: agua},
	}

	tax := dec("2.00")
	assert.True(t, service.PurchaseTotal(items, &tax).Equal(dec("39.50")))
	assert.True(t, service.PurchaseTotal(items, nil).Equal(dec("37.50")))
}

func TestPurchaseTotalSkipsUnloadedProducts(t *testing.T) {
	items := []model.PurchaseItem{
		{ProductID: uuid.New(), Quantity: 4}, // no Product loaded
	}
	assert.True(t, service.PurchaseTotal(items, nil).Equal(decimal.Zero))
}

func TestPurchaseTotalDriftsWithPriceEdits(t *testing.T) {
	svc, _, supRepo, prodRepo, catRepo := buildPurchaseSvc()
	sup := seedSupplier(supRepo, "Distribuidora Sur")
	cat := seedCategory(catRepo, "Bebidas", nil)
	p := seedProduct(prodRepo, cat.ID, "Cola", "cola", "10.00", "15.00")

	created, err := svc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: sup.ID.String(),
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, created.Total.Equal(dec("30.00")))

	// Totals are live: editing the product's purchase price changes the
	// purchase total on the next read.
	prodRepo.products[p.ID].PurchasePrice = dec("12.00")
	reread, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, reread.Total.Equal(dec("36.00")))
}

func TestCreatePurchaseDefaultsToCompleted(t *testing.T) {
	svc, _, supRepo, prodRepo, catRepo := buildPurchaseSvc()
	sup := seedSupplier(supRepo, "Distribuidora Sur")
	cat := seedCategory(catRepo, "Bebidas", nil)
	p := seedProduct(prodRepo, cat.ID, "Cola", "cola", "10.00", "15.00")

	created, err := svc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: sup.ID.String(),
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStateCompleted, created.State)
}

func TestCreatePurchaseRejectsUnknownProduct(t *testing.T) {
	svc, purRepo, supRepo, _, _ := buildPurchaseSvc()
	sup := seedSupplier(supRepo, "Distribuidora Sur")

	_, err := svc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: sup.ID.String(),
		Items:      []dto.PurchaseItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	// All-or-nothing: no purchase row was written
	assert.Empty(t, purRepo.purchases)
}

func TestCreatePurchaseRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, supRepo, prodRepo, catRepo := buildPurchaseSvc()
	sup := seedSupplier(supRepo, "Distribuidora Sur")
	cat := seedCategory(catRepo, "Bebidas", nil)
	p := seedProduct(prodRepo, cat.ID, "Cola", "cola", "10.00", "15.00")

	_, err := svc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: sup.ID.String(),
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID.String(), Quantity: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestUpdatePurchaseStateUnconstrained(t *testing.T) {
	svc, _, supRepo, prodRepo, catRepo := buildPurchaseSvc()
	sup := seedSupplier(supRepo, "Distribuidora Sur")
	cat := seedCategory(catRepo, "Bebidas", nil)
	p := seedProduct(prodRepo, cat.ID, "Cola", "cola", "10.00", "15.00")

	created, err := svc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: sup.ID.String(),
		State:      model.PurchaseStateCancelled,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	// cancelled → pending is allowed: there is no transition graph
	pending := model.PurchaseStatePending
	updated, err := svc.Update(context.Background(), created.ID, dto.UpdatePurchaseRequest{State: &pending})
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatePending, updated.State)
}

func TestSendOrderUnknownPurchase(t *testing.T) {
	svc, _, _, _, _ := buildPurchaseSvc()

	err := svc.SendOrder(context.Background(), uuid.New(), dto.SendPurchaseOrderRequest{ToEmail: "proveedor@example.com"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
