// Package orderingtest provee un almacenamiento transaccional en memoria para probar el flujo de pedidos
// sin PostgreSQL. Replica los índices únicos parciales (filas vivas) y las llaves foráneas del esquema.
package orderingtest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ErrInjected error de almacenamiento simulado.
var ErrInjected = errors.New("fallo de almacenamiento simulado")

// Failures errores a inyectar. ItemInsertAt indica en qué línea (1-based) falla el insert de ítems.
type Failures struct {
	OrderInsert   error
	ItemInsert    error
	ItemInsertAt  int
	InvoiceInsert error
	Commit        error
}

type state struct {
	customers  map[string]*entity.Customer
	warehouses map[string]*entity.Warehouse
	products   map[string]*entity.Product
	orders     map[string]*entity.Order
	items      map[string]*entity.OrderItem
	invoices   map[string]*entity.Invoice
}

func newState() *state {
	return &state{
		customers:  map[string]*entity.Customer{},
		warehouses: map[string]*entity.Warehouse{},
		products:   map[string]*entity.Product{},
		orders:     map[string]*entity.Order{},
		items:      map[string]*entity.OrderItem{},
		invoices:   map[string]*entity.Invoice{},
	}
}

func (s *state) clone() *state {
	cp := newState()
	for k, v := range s.customers {
		c := *v
		cp.customers[k] = &c
	}
	for k, v := range s.warehouses {
		w := *v
		cp.warehouses[k] = &w
	}
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	for k, v := range s.items {
		i := *v
		cp.items[k] = &i
	}
	for k, v := range s.invoices {
		i := *v
		cp.invoices[k] = &i
	}
	return cp
}

// Store almacenamiento en memoria. Las transacciones se serializan: cada RunOrder trabaja sobre una
// copia del estado y solo la publica si fn y el commit terminan sin error.
type Store struct {
	mu        sync.Mutex
	st        *state
	fail      Failures
	blind     bool
	Commits   int
	Rollbacks int
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ ordering.TxRunner = (*Store)(nil)

// Fail configura los errores a inyectar en las próximas operaciones.
func (s *Store) Fail(f Failures) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = f
}

// BlindNumberChecks hace que NumberExists responda siempre false, simulando que otra transacción
// confirmó el mismo número después de la verificación. Solo el índice único lo detecta.
func (s *Store) BlindNumberChecks(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blind = on
}

// RunOrder implementa ordering.TxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(repos ordering.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &view{s: s, tx: s.st.clone()}
	if err := fn(tx.repos()); err != nil {
		s.Rollbacks++
		return err
	}
	if err := ctx.Err(); err != nil {
		s.Rollbacks++
		return err
	}
	if s.fail.Commit != nil {
		s.Rollbacks++
		return s.fail.Commit
	}
	s.st = tx.tx
	s.Commits++
	return nil
}

// ── Semillas ────────────────────────────────────────────────────────────────

// AddCustomer registra un cliente vivo de la empresa.
func (s *Store) AddCustomer(companyID string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	c := &entity.Customer{ID: uuid.New().String(), CompanyID: companyID, Type: entity.CustomerTypeCustomer, Name: "Cliente", CreatedAt: now, UpdatedAt: now}
	s.st.customers[c.ID] = c
	cp := *c
	return &cp
}

// AddWarehouse registra una bodega viva de la empresa.
func (s *Store) AddWarehouse(companyID string) *entity.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	w := &entity.Warehouse{ID: uuid.New().String(), CompanyID: companyID, Name: "Bodega", CreatedAt: now, UpdatedAt: now}
	s.st.warehouses[w.ID] = w
	cp := *w
	return &cp
}

// AddProduct registra un producto vivo de la empresa.
func (s *Store) AddProduct(companyID string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), CompanyID: companyID, Name: "Producto", Price: decimal.NewFromInt(1), Type: entity.StorageSolid, CreatedAt: now, UpdatedAt: now}
	s.st.products[p.ID] = p
	cp := *p
	return &cp
}

// AddOrder registra un pedido vivo con el número dado (sin líneas ni factura).
func (s *Store) AddOrder(companyID, customerID, warehouseID, number string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	o := &entity.Order{
		ID: uuid.New().String(), CompanyID: companyID, Number: number, Type: entity.OrderTypeSales,
		CustomerID: customerID, WarehouseID: warehouseID, Date: now, CreatedAt: now, UpdatedAt: now,
	}
	s.st.orders[o.ID] = o
	cp := *o
	return &cp
}

// DeleteCustomer marca un cliente como eliminado.
func (s *Store) DeleteCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.st.customers[id]; ok {
		now := time.Now().UTC()
		c.DeletedAt = &now
	}
}

// ── Inspección ──────────────────────────────────────────────────────────────

// Counts número de filas vivas confirmadas.
type Counts struct {
	Orders   int
	Items    int
	Invoices int
}

// Counts devuelve el número de filas vivas confirmadas.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c Counts
	for _, o := range s.st.orders {
		if o.DeletedAt == nil {
			c.Orders++
		}
	}
	for _, i := range s.st.items {
		if i.DeletedAt == nil {
			c.Items++
		}
	}
	for _, i := range s.st.invoices {
		if i.DeletedAt == nil {
			c.Invoices++
		}
	}
	return c
}

// InvoicesFor facturas vivas confirmadas de un pedido.
func (s *Store) InvoicesFor(orderID string) []*entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Invoice
	for _, i := range s.st.invoices {
		if i.OrderID == orderID && i.DeletedAt == nil {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out
}

// ── Repositorios fuera de transacción ───────────────────────────────────────

// Orders repositorio de pedidos sobre el estado confirmado.
func (s *Store) Orders() repository.OrderRepository { return orderRepo{v: &view{s: s}} }

// OrderItems repositorio de líneas sobre el estado confirmado.
func (s *Store) OrderItems() repository.OrderItemRepository { return itemRepo{v: &view{s: s}} }

// Invoices repositorio de facturas sobre el estado confirmado.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{v: &view{s: s}} }

// Customers repositorio de clientes sobre el estado confirmado.
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{v: &view{s: s}} }

// Warehouses repositorio de bodegas sobre el estado confirmado.
func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{v: &view{s: s}} }

// Products repositorio de productos sobre el estado confirmado.
func (s *Store) Products() repository.ProductRepository { return productRepo{v: &view{s: s}} }

// view acceso al estado: dentro de una transacción (tx != nil, el lock ya está tomado) o directo.
type view struct {
	s  *Store
	tx *state
}

func (v *view) with(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

func (v *view) repos() ordering.TxRepos {
	return ordering.TxRepos{
		Customers:  customerRepo{v: v},
		Warehouses: warehouseRepo{v: v},
		Products:   productRepo{v: v},
		Orders:     orderRepo{v: v},
		OrderItems: itemRepo{v: v},
		Invoices:   invoiceRepo{v: v},
	}
}

func paginate[T any](rows []*T, limit, offset int) []*T {
	if offset >= len(rows) {
		return []*T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

// ── customers ───────────────────────────────────────────────────────────────

type customerRepo struct{ v *view }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.with(func(st *state) error {
		cp := *c
		st.customers[c.ID] = &cp
		return nil
	})
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.with(func(st *state) error {
		if c, ok := st.customers[id]; ok && c.DeletedAt == nil {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r customerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.with(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID && c.DeletedAt == nil {
				cp := *c
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), err
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *c
		st.customers[c.ID] = &cp
		return nil
	})
}

func (r customerRepo) SoftDelete(_ context.Context, id, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		c, ok := st.customers[id]
		if !ok || c.DeletedAt != nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		c.DeletedAt, c.ModifiedBy = &now, &modifiedBy
		return nil
	})
}

func (r customerRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.orders {
			if o.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(st.customers, id)
		return nil
	})
}

// ── warehouses ──────────────────────────────────────────────────────────────

type warehouseRepo struct{ v *view }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.v.with(func(st *state) error {
		cp := *w
		st.warehouses[w.ID] = &cp
		return nil
	})
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.with(func(st *state) error {
		if w, ok := st.warehouses[id]; ok && w.DeletedAt == nil {
			cp := *w
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *w
		st.warehouses[w.ID] = &cp
		return nil
	})
}

func (r warehouseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.v.with(func(st *state) error {
		for _, w := range st.warehouses {
			if w.CompanyID == companyID && w.DeletedAt == nil {
				cp := *w
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), err
}

func (r warehouseRepo) SoftDelete(_ context.Context, id, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		w, ok := st.warehouses[id]
		if !ok || w.DeletedAt != nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		w.DeletedAt, w.ModifiedBy = &now, &modifiedBy
		return nil
	})
}

func (r warehouseRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.orders {
			if o.WarehouseID == id {
				return domain.ErrConflict
			}
		}
		delete(st.warehouses, id)
		return nil
	})
}

// ── products ────────────────────────────────────────────────────────────────

type productRepo struct{ v *view }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		for _, e := range st.products {
			if e.CompanyID == p.CompanyID && e.SKU != "" && e.SKU == p.SKU && e.DeletedAt == nil {
				return domain.ErrDuplicate
			}
		}
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if e, ok := st.products[p.ID]; !ok || e.DeletedAt != nil {
			return domain.ErrNotFound
		}
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

func (r productRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID && p.DeletedAt == nil {
				cp := *p
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), err
}

func (r productRepo) SoftDelete(_ context.Context, id, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.DeletedAt != nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		p.DeletedAt, p.ModifiedBy = &now, &modifiedBy
		return nil
	})
}

// Delete replica la FK RESTRICT de order_items.product_id, incluidas las líneas de pedidos eliminados.
func (r productRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, it := range st.items {
			if it.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		if p, ok := st.products[id]; ok && p.DeletedAt == nil {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// ── orders ──────────────────────────────────────────────────────────────────

type orderRepo struct{ v *view }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.with(func(st *state) error {
		if err := r.v.s.fail.OrderInsert; err != nil {
			return err
		}
		for _, e := range st.orders {
			if e.CompanyID == o.CompanyID && e.Number == o.Number && e.DeletedAt == nil {
				return domain.ErrDuplicateIdentifier
			}
		}
		if _, ok := st.customers[o.CustomerID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := st.warehouses[o.WarehouseID]; !ok {
			return domain.ErrConflict
		}
		cp := *o
		st.orders[o.ID] = &cp
		return nil
	})
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.with(func(st *state) error {
		if o, ok := st.orders[id]; ok && o.DeletedAt == nil {
			cp := *o
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r orderRepo) NumberExists(_ context.Context, companyID, number string) (bool, error) {
	var found bool
	err := r.v.with(func(st *state) error {
		if r.v.s.blind {
			return nil
		}
		for _, o := range st.orders {
			if o.CompanyID == companyID && o.Number == number && o.DeletedAt == nil {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r orderRepo) live(st *state, companyID string) []*entity.Order {
	var out []*entity.Order
	for _, o := range st.orders {
		if o.CompanyID == companyID && o.DeletedAt == nil {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (r orderRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v.with(func(st *state) error {
		out = paginate(r.live(st, companyID), limit, offset)
		return nil
	})
	return out, err
}

func (r orderRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	var n int
	err := r.v.with(func(st *state) error {
		n = len(r.live(st, companyID))
		return nil
	})
	return n, err
}

func (r orderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.orders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, e := range st.orders {
			if e.ID != o.ID && e.CompanyID == o.CompanyID && e.Number == o.Number && e.DeletedAt == nil {
				return domain.ErrDuplicateIdentifier
			}
		}
		cp := *o
		st.orders[o.ID] = &cp
		return nil
	})
}

func (r orderRepo) SoftDelete(_ context.Context, id, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.DeletedAt != nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		o.DeletedAt, o.ModifiedBy = &now, &modifiedBy
		return nil
	})
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.ErrNotFound
		}
		for _, inv := range st.invoices {
			if inv.OrderID == id {
				return domain.ErrConflict
			}
		}
		for k, it := range st.items {
			if it.OrderID == id {
				delete(st.items, k)
			}
		}
		delete(st.orders, id)
		return nil
	})
}

// ── order items ─────────────────────────────────────────────────────────────

type itemRepo struct{ v *view }

func (r itemRepo) Create(_ context.Context, it *entity.OrderItem) error {
	return r.v.with(func(st *state) error {
		if f := r.v.s.fail; f.ItemInsert != nil {
			n := 0
			for _, e := range st.items {
				if e.OrderID == it.OrderID {
					n++
				}
			}
			if n+1 >= f.ItemInsertAt {
				return f.ItemInsert
			}
		}
		if _, ok := st.orders[it.OrderID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := st.products[it.ProductID]; !ok {
			return domain.ErrConflict
		}
		for _, e := range st.items {
			if e.OrderID == it.OrderID && e.ProductID == it.ProductID && e.DeletedAt == nil {
				return domain.ErrDuplicateOrderItem
			}
		}
		cp := *it
		st.items[it.ID] = &cp
		return nil
	})
}

func (r itemRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	out := []*entity.OrderItem{}
	err := r.v.with(func(st *state) error {
		for _, it := range st.items {
			if it.OrderID == orderID && it.DeletedAt == nil {
				cp := *it
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// ── invoices ────────────────────────────────────────────────────────────────

type invoiceRepo struct{ v *view }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.v.with(func(st *state) error {
		if err := r.v.s.fail.InvoiceInsert; err != nil {
			return err
		}
		if _, ok := st.orders[inv.OrderID]; !ok {
			return domain.ErrConflict
		}
		for _, e := range st.invoices {
			if e.DeletedAt != nil {
				continue
			}
			if e.CompanyID == inv.CompanyID && e.Number == inv.Number {
				return domain.ErrDuplicateIdentifier
			}
			if e.OrderID == inv.OrderID {
				return domain.ErrConflict
			}
		}
		cp := *inv
		st.invoices[inv.ID] = &cp
		return nil
	})
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.v.with(func(st *state) error {
		if i, ok := st.invoices[id]; ok && i.DeletedAt == nil {
			cp := *i
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r invoiceRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.v.with(func(st *state) error {
		for _, i := range st.invoices {
			if i.OrderID == orderID && i.DeletedAt == nil {
				cp := *i
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

func (r invoiceRepo) NumberExists(_ context.Context, companyID, number string) (bool, error) {
	var found bool
	err := r.v.with(func(st *state) error {
		if r.v.s.blind {
			return nil
		}
		for _, i := range st.invoices {
			if i.CompanyID == companyID && i.Number == number && i.DeletedAt == nil {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r invoiceRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.v.with(func(st *state) error {
		for _, i := range st.invoices {
			if i.CompanyID == companyID && i.DeletedAt == nil {
				cp := *i
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return paginate(out, limit, offset), err
}

func (r invoiceRepo) UpdateStatus(_ context.Context, id, status, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		i, ok := st.invoices[id]
		if !ok || i.DeletedAt != nil {
			return domain.ErrNotFound
		}
		i.Status, i.ModifiedBy, i.UpdatedAt = status, &modifiedBy, time.Now().UTC()
		return nil
	})
}

func (r invoiceRepo) SoftDelete(_ context.Context, id, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		i, ok := st.invoices[id]
		if !ok || i.DeletedAt != nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		i.DeletedAt, i.ModifiedBy = &now, &modifiedBy
		return nil
	})
}

func (r invoiceRepo) UpdateDate(_ context.Context, orderID string, date time.Time, modifiedBy string) error {
	return r.v.with(func(st *state) error {
		for _, i := range st.invoices {
			if i.OrderID == orderID && i.DeletedAt == nil {
				i.Date, i.ModifiedBy, i.UpdatedAt = date, &modifiedBy, time.Now().UTC()
			}
		}
		return nil
	})
}

func (r invoiceRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.invoices, id)
		return nil
	})
}
