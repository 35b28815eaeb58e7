package entity

import "time"

// Customer representa un cliente del usuario. Es referenciado por las ventas.
type Customer struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
