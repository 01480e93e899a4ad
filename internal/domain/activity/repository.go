package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListByPet devuelve las entradas más recientes primero.
	ListByPet(ctx context.Context, userID, petName string, limit int) ([]Entry, error)
}
