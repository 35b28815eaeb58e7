// Package memory implementa los repositorios sobre mapas en memoria, con transacciones
// que trabajan sobre una copia y solo la publican al confirmar. Lo usan los tests de
// casos de uso y de HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar un fallo con FailOn.
const (
	OpSaleCreate     = "sales.create"
	OpSaleDelete     = "sales.delete"
	OpStockDecrement = "products.decrement"
	OpStockIncrement = "products.increment"
)

type state struct {
	users     map[string]entity.User
	customers map[string]entity.Customer
	products  map[string]entity.Product
	sales     map[string]entity.Sale
	seq       map[string]int64 // orden de inserción para listados estables
	next      int64
}

func newState() *state {
	return &state{
		users:     map[string]entity.User{},
		customers: map[string]entity.Customer{},
		products:  map[string]entity.Product{},
		sales:     map[string]entity.Sale{},
		seq:       map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		v.Items = append([]entity.SaleItem(nil), v.Items...)
		c.sales[k] = v
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	c.next = s.next
	return c
}

func (s *state) stamp(id string) {
	if _, ok := s.seq[id]; !ok {
		s.next++
		s.seq[id] = s.next
	}
}

// Store estado compartido por todos los repositorios.
type Store struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// FailOn hace que la próxima ejecución de op devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// faultLocked consume el fallo inyectado para op. Llamar con mu tomado.
func (s *Store) faultLocked(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// access ejecuta fn sobre el estado: el de la tx si existe, o el global con el lock tomado.
type access func(fn func(st *state) error) error

func (s *Store) direct() access {
	return func(fn func(st *state) error) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.st)
	}
}

func inTx(st *state) access {
	return func(fn func(*state) error) error { return fn(st) }
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() repository.UserRepository { return &userRepo{with: s.direct()} }

// Customers repositorio de clientes fuera de transacción.
func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepo{with: s.direct()}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository {
	return &productRepo{s: s, with: s.direct()}
}

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s: s, with: s.direct()} }

var _ sales.TxRunner = (*Store)(nil)

// RunSales ejecuta fn sobre una copia del estado; solo la publica si fn no devuelve error.
// Las transacciones se serializan con el lock del store.
func (s *Store) RunSales(ctx context.Context, fn func(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	with := inTx(work)
	if err := fn(&productRepo{s: s, with: with}, &customerRepo{with: with}, &saleRepo{s: s, with: with}); err != nil {
		return err
	}
	s.st = work
	return nil
}
