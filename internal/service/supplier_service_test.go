package service_test

import (
	"context"
	"testing"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/infra"
	"almacen/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSupplierSvc() (service.SupplierService, *stubSupplierRepo, *stubProductRepo) {
	supRepo := newStubSupplierRepo()
	prodRepo := newStubProductRepo()
	svc := service.NewSupplierService(supRepo, prodRepo, infra.ValidateImage)
	return svc, supRepo, prodRepo
}

func TestCreateSupplierRejectsDuplicateName(t *testing.T) {
	svc, repo, _ := buildSupplierSvc()
	seedSupplier(repo, "Distribuidora Sur")

	_, err := svc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Distribuidora Sur"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestUpdateSupplierRenameToTakenName(t *testing.T) {
	svc, repo, _ := buildSupplierSvc()
	seedSupplier(repo, "Distribuidora Sur")
	other := seedSupplier(repo, "Distribuidora Norte")

	_, err := svc.Update(context.Background(), other.ID, dto.UpdateSupplierRequest{
		Name: strPtr("Distribuidora Sur"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

// Supplier deletion is PROTECT-kind while products point at it. The
// category RESTRICT kind is a different error on purpose: clients render
// different recovery hints for each.
func TestDeleteSupplierProtectedByProducts(t *testing.T) {
	svc, repo, prodRepo := buildSupplierSvc()
	sup := seedSupplier(repo, "Distribuidora Sur")

	catRepo := newStubCategoryRepo()
	cat := seedCategory(catRepo, "Bebidas", nil)
	p := seedProduct(prodRepo, cat.ID, "Cola", "cola", "10.00", "15.00")
	p.SupplierID = &sup.ID

	err := svc.Delete(context.Background(), sup.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindProtected, apierror.KindOf(err))
	// Still there
	_, got := repo.suppliers[sup.ID]
	assert.True(t, got)
}

func TestDeleteSupplierWithoutProducts(t *testing.T) {
	svc, repo, _ := buildSupplierSvc()
	sup := seedSupplier(repo, "Distribuidora Sur")

	require.NoError(t, svc.Delete(context.Background(), sup.ID))
	assert.Empty(t, repo.suppliers)
}

func TestDeleteSupplierNotFound(t *testing.T) {
	svc, _, _ := buildSupplierSvc()

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
