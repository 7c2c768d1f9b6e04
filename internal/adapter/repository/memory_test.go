package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/lojazap/lojazap-backend/internal/domain/catalog"
	orderdomain "github.com/lojazap/lojazap-backend/internal/domain/order"
	tenantdomain "github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/pkg/tenant"
)

func twoTenants(t *testing.T, repo *MemoryTenantRepository) (*tenantdomain.Tenant, *tenantdomain.Tenant) {
	t.Helper()
	ctx := context.Background()

	a, err := tenantdomain.NewTenant("Loja A", "loja-a", "a@example.com", "5511911110000")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	b, err := tenantdomain.NewTenant("Loja B", "loja-b", "b@example.com", "5511922220000")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, b))

	return a, b
}

func orderFixture(t *testing.T, tenantID string) *orderdomain.Order {
	t.Helper()
	items := []orderdomain.CartItem{{ProductID: "p1", Name: "Camiseta", Price: 50, Quantity: 1}}
	o, err := orderdomain.NewOrder(tenantID, "", items, 50, 20, 0,
		orderdomain.Shipping{Method: orderdomain.ShippingPickup}, orderdomain.PaymentPix, "")
	require.NoError(t, err)
	return o
}

// Produto cadastrado em uma loja nunca aparece nas consultas de outra
func TestProductsAreIsolatedPerTenant(t *testing.T) {
	store := NewMemoryStore()
	tenants := NewMemoryTenantRepository(store)
	catalog := NewMemoryCatalogRepository(store)
	ctx := context.Background()

	a, b := twoTenants(t, tenants)

	p, err := catalogdomain.NewProduct(a.ID, "Tênis", "cat-1", "", 150, 60, 10)
	require.NoError(t, err)
	require.NoError(t, catalog.CreateProduct(ctx, p))

	found, err := catalog.FindProductByID(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tênis", found.Name)

	// Mesmo ID, outra loja: não existe
	_, err = catalog.FindProductByID(ctx, b.ID, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	listB, err := catalog.ListProducts(ctx, b.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listB)
}

// Remover uma loja não toca nos dados das demais
func TestTenantDeleteDoesNotAffectOthers(t *testing.T) {
	store := NewMemoryStore()
	tenants := NewMemoryTenantRepository(store)
	orders := NewMemoryOrderRepository(store)
	ctx := context.Background()

	a, b := twoTenants(t, tenants)

	pedidoB := orderFixture(t, b.ID)
	require.NoError(t, orders.Create(ctx, pedidoB))

	require.NoError(t, tenants.Delete(ctx, a.ID))

	_, err := tenants.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrTenantNotFound)

	// Pedidos da loja B continuam intactos
	kept, err := orders.FindByID(ctx, b.ID, pedidoB.ID)
	require.NoError(t, err)
	assert.Equal(t, pedidoB.ID, kept.ID)
}

// Loja com pedidos vinculados não pode ser removida
func TestTenantDeleteBlockedByOrders(t *testing.T) {
	store := NewMemoryStore()
	tenants := NewMemoryTenantRepository(store)
	orders := NewMemoryOrderRepository(store)
	ctx := context.Background()

	a, _ := twoTenants(t, tenants)

	require.NoError(t, orders.Create(ctx, orderFixture(t, a.ID)))

	err := tenants.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, ErrTenantHasOrders)
}

func TestDuplicateSlugRejected(t *testing.T) {
	tenants := NewMemoryTenantRepository(NewMemoryStore())
	ctx := context.Background()

	a, err := tenantdomain.NewTenant("Loja A", "mesma-loja", "a@example.com", "")
	require.NoError(t, err)
	require.NoError(t, tenants.Create(ctx, a))

	b, err := tenantdomain.NewTenant("Loja B", "mesma-loja", "b@example.com", "")
	require.NoError(t, err)
	assert.ErrorIs(t, tenants.Create(ctx, b), ErrTenantDuplicateKey)
}

// Toda operação sem tenant resolvido é rejeitada na fronteira do armazenamento
func TestOperationsWithoutTenantAreRejected(t *testing.T) {
	store := NewMemoryStore()
	catalog := NewMemoryCatalogRepository(store)
	orders := NewMemoryOrderRepository(store)
	ctx := context.Background()

	p := &catalogdomain.Product{ID: "p1", Name: "Tênis"}
	assert.ErrorIs(t, catalog.CreateProduct(ctx, p), tenant.ErrNoActiveTenant)

	_, err := catalog.ListProducts(ctx, "", 0, 0)
	assert.ErrorIs(t, err, tenant.ErrNoActiveTenant)

	_, err = orders.FindByID(ctx, "", "o1")
	assert.ErrorIs(t, err, tenant.ErrNoActiveTenant)

	_, err = orders.List(ctx, "", 0, 0)
	assert.ErrorIs(t, err, tenant.ErrNoActiveTenant)
}

// Valores devolvidos são cópias: mutar o retorno não muda o armazenamento
func TestReadsReturnCopies(t *testing.T) {
	store := NewMemoryStore()
	tenants := NewMemoryTenantRepository(store)
	catalog := NewMemoryCatalogRepository(store)
	ctx := context.Background()

	a, _ := twoTenants(t, tenants)

	p, err := catalogdomain.NewProduct(a.ID, "Tênis", "cat-1", "", 150, 60, 10)
	require.NoError(t, err)
	require.NoError(t, catalog.CreateProduct(ctx, p))

	first, err := catalog.FindProductByID(ctx, a.ID, p.ID)
	require.NoError(t, err)
	first.Name = "Alterado"
	first.Sizes = append(first.Sizes, "GG")

	second, err := catalog.FindProductByID(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tênis", second.Name)
	assert.Empty(t, second.Sizes)
}

// Validador do middleware: só loja ativa passa
func TestValidateTenantRequiresActiveStatus(t *testing.T) {
	tenants := NewMemoryTenantRepository(NewMemoryStore())
	ctx := context.Background()

	a, err := tenantdomain.NewTenant("Loja A", "loja-a", "a@example.com", "")
	require.NoError(t, err)
	require.NoError(t, tenants.Create(ctx, a))

	ok, err := tenants.ValidateTenant(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	a.Block()
	require.NoError(t, tenants.Update(ctx, a))

	ok, err = tenants.ValidateTenant(a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tenants.ValidateTenant("inexistente")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 0, 0))
	assert.Equal(t, []int{1, 2}, paginate(items, 2, 0))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 10, 4))
	assert.Empty(t, paginate(items, 2, 10))
}
