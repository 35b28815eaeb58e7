package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrConflict           = errors.New("resource is referenced by existing sales")
	ErrInsufficientStock  = errors.New("not enough stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrSaleNotFound       = errors.New("sale not found")
)

// RefError fallo ligado a una entidad referenciada dentro de una venta (producto o cliente).
// errors.Is(err, ErrInsufficientStock) / errors.Is(err, ErrProductNotFound) siguen funcionando.
type RefError struct {
	Err  error
	ID   string
	Name string
}

func (e *RefError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.Name, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.ID)
}

func (e *RefError) Unwrap() error { return e.Err }

// NewProductNotFound producto de una línea inexistente o de otro usuario.
func NewProductNotFound(productID string) error {
	return &RefError{Err: ErrProductNotFound, ID: productID}
}

// NewInsufficientStock producto de una línea sin stock suficiente.
func NewInsufficientStock(productID, productName string) error {
	return &RefError{Err: ErrInsufficientStock, ID: productID, Name: productName}
}

// NewCustomerNotFound cliente de la venta inexistente o de otro usuario.
func NewCustomerNotFound(customerID string) error {
	return &RefError{Err: ErrCustomerNotFound, ID: customerID}
}
