package service_test

import (
	"context"
	"sort"
	"strings"

	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory CategoryRepository stub ────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	result := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) ByLevel(_ context.Context, level int) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		if c.Level == level {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FilterByName(_ context.Context, name string) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) ChildrenOf(_ context.Context, parentID *uuid.UUID) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		switch {
		case parentID == nil && c.ParentID == nil:
			result = append(result, *c)
		case parentID != nil && c.ParentID != nil && *c.ParentID == *parentID:
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) Descendants(_ context.Context, id uuid.UUID) ([]model.Category, error) {
	var all []model.Category
	frontier := []uuid.UUID{id}
	for len(frontier) > 0 {
		var batch []model.Category
		for _, f := range frontier {
			for _, c := range r.categories {
				if c.ParentID != nil && *c.ParentID == f {
					batch = append(batch, *c)
				}
			}
		}
		frontier = frontier[:0]
		for _, c := range batch {
			frontier = append(frontier, c.ID)
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) MoveSubtree(_ context.Context, id uuid.UUID, parentID *uuid.UUID, level int, descendantIDs []uuid.UUID, delta int) error {
	c, ok := r.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.ParentID = parentID
	c.Level = level
	for _, did := range descendantIDs {
		if d, ok := r.categories[did]; ok {
			d.Level += delta
		}
	}
	return nil
}

func (r *stubCategoryRepo) DeleteSubtree(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.categories, id)
	}
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	issues   map[uuid.UUID]*model.ProductIssue // keyed by product id
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		issues:   make(map[uuid.UUID]*model.ProductIssue),
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	result := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	delete(r.issues, id)
	return nil
}

func (r *stubProductRepo) UpdateImagePath(_ context.Context, id uuid.UUID, path string) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ImagePath = &path
	return nil
}

func (r *stubProductRepo) CountByCategoryIDs(_ context.Context, categoryIDs []uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.products {
		for _, cid := range categoryIDs {
			if p.CategoryID == cid {
				count++
			}
		}
	}
	return count, nil
}

func (r *stubProductRepo) CountBySupplierID(_ context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

func (r *stubProductRepo) FindIssueByProductID(_ context.Context, productID uuid.UUID) (*model.ProductIssue, error) {
	issue, ok := r.issues[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *issue
	return &cp, nil
}

func (r *stubProductRepo) SaveIssue(_ context.Context, issue *model.ProductIssue) error {
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
	}
	cp := *issue
	r.issues[issue.ProductID] = &cp
	return nil
}

func (r *stubProductRepo) DeleteIssueByProductID(_ context.Context, productID uuid.UUID) error {
	delete(r.issues, productID)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory SupplierRepository stub ────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	result := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *stubSupplierRepo) UpdateImagePath(_ context.Context, id uuid.UUID, path string) error {
	s, ok := r.suppliers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.ImagePath = &path
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── In-memory InventoryRepository stub ───────────────────────────────────────

// rows kept in insertion order to mirror the id-ascending reads.
type stubInventoryRepo struct {
	rows []*model.Inventory
}

func newStubInventoryRepo() *stubInventoryRepo { return &stubInventoryRepo{} }

func (r *stubInventoryRepo) Create(_ context.Context, inv *model.Inventory) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Inventory, error) {
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.Inventory, error) {
	result := make([]model.Inventory, 0, len(r.rows))
	for _, row := range r.rows {
		result = append(result, *row)
	}
	return result, nil
}

func (r *stubInventoryRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.Inventory, error) {
	var result []model.Inventory
	for _, row := range r.rows {
		if row.ProductID == productID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *stubInventoryRepo) LowStock(_ context.Context, threshold int) ([]model.Inventory, error) {
	var result []model.Inventory
	for _, row := range r.rows {
		if row.CurrentStock <= threshold {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, inv *model.Inventory) error {
	for i, row := range r.rows {
		if row.ID == inv.ID {
			cp := *inv
			r.rows[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── In-memory PurchaseRepository stub ────────────────────────────────────────

// products is consulted on FindByID so item rows come back with their
// product loaded, the way the GORM preload does.
type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
	products  *stubProductRepo
}

func newStubPurchaseRepo(products *stubProductRepo) *stubPurchaseRepo {
	return &stubPurchaseRepo{
		purchases: make(map[uuid.UUID]*model.Purchase),
		products:  products,
	}
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PurchaseID = p.ID
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = make([]model.PurchaseItem, len(p.Items))
	copy(cp.Items, p.Items)
	for i := range cp.Items {
		if prod, ok := r.products.products[cp.Items[i].ProductID]; ok {
			prodCopy := *prod
			cp.Items[i].Product = &prodCopy
		}
	}
	return &cp, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var result []model.Purchase
	for _, p := range r.purchases {
		if filter.State != "" && p.State != filter.State {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, p *model.Purchase) error {
	existing, ok := r.purchases[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = existing.Items // items are never replaced through Update
	r.purchases[p.ID] = &cp
	return nil
}

func (r *stubPurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.purchases, id)
	return nil
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── In-memory ReportRepository stub ──────────────────────────────────────────

type stubReportRepo struct {
	rows []repository.ProductWithStock
}

func (r *stubReportRepo) ListWithStock(_ context.Context) ([]repository.ProductWithStock, error) {
	return r.rows, nil
}

func (r *stubReportRepo) ListWithLowStock(_ context.Context, threshold int) ([]repository.ProductWithStock, error) {
	var result []repository.ProductWithStock
	for _, row := range r.rows {
		if row.TotalStock <= threshold {
			result = append(result, row)
		}
	}
	return result, nil
}

func (r *stubReportRepo) ListByPriceRange(_ context.Context, min, max decimal.Decimal) ([]model.Product, error) {
	var result []model.Product
	for _, row := range r.rows {
		if row.SalePrice.GreaterThanOrEqual(min) && row.SalePrice.LessThanOrEqual(max) {
			result = append(result, row.Product)
		}
	}
	return result, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// ── In-memory OperatorRepository stub ────────────────────────────────────────

type stubOperatorRepo struct {
	operators map[uuid.UUID]*model.Operator
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{operators: make(map[uuid.UUID]*model.Operator)}
}

func (r *stubOperatorRepo) Create(_ context.Context, o *model.Operator) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.operators[o.ID] = o
	return nil
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Operator, error) {
	o, ok := r.operators[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*model.Operator, error) {
	for _, o := range r.operators {
		if o.Username == username {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOperatorRepo) List(_ context.Context, includeInactive bool) ([]model.Operator, error) {
	var result []model.Operator
	for _, o := range r.operators {
		if o.Active || includeInactive {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *stubOperatorRepo) Update(_ context.Context, o *model.Operator) error {
	cp := *o
	r.operators[o.ID] = &cp
	return nil
}

func (r *stubOperatorRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	o, ok := r.operators[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Active = false
	return nil
}

var _ repository.OperatorRepository = (*stubOperatorRepo)(nil)

// ── In-memory VariationRepository stub ───────────────────────────────────────

type stubVariationRepo struct {
	variations map[uuid.UUID]*model.Variation
}

func newStubVariationRepo() *stubVariationRepo {
	return &stubVariationRepo{variations: make(map[uuid.UUID]*model.Variation)}
}

func (r *stubVariationRepo) Create(_ context.Context, v *model.Variation) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variations[v.ID] = v
	return nil
}

func (r *stubVariationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Variation, error) {
	v, ok := r.variations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVariationRepo) List(_ context.Context, filter dto.VariationFilter) ([]model.Variation, error) {
	var result []model.Variation
	for _, v := range r.variations {
		if filter.ProductID != "" && v.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.State != "" && v.State != filter.State {
			continue
		}
		result = append(result, *v)
	}
	return result, nil
}

func (r *stubVariationRepo) Update(_ context.Context, v *model.Variation) error {
	cp := *v
	r.variations[v.ID] = &cp
	return nil
}

func (r *stubVariationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.variations, id)
	return nil
}

func (r *stubVariationRepo) CountByCategory(_ context.Context) ([]dto.VariationCategoryCount, error) {
	counts := make(map[string]int64)
	for _, v := range r.variations {
		counts[v.Category]++
	}
	result := make([]dto.VariationCategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, dto.VariationCategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

var _ repository.VariationRepository = (*stubVariationRepo)(nil)
