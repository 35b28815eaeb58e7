package dto

import "time"

// CustomerRequest body para POST /customers/add y PATCH /customers/:id.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Address string `json:"address" validate:"required,min=1"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerEnvelope respuesta de alta/edición.
type CustomerEnvelope struct {
	Message  string            `json:"message"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Customers      []CustomerResponse `json:"customers"`
	TotalCustomers int                `json:"totalCustomers"`
	TotalPages     int                `json:"totalPages"`
	CurrentPage    int                `json:"currentPage"`
}
