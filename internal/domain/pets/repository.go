package pets

import "context"

// Repository guarda la entrada custom de cada usuario (una por usuario).
type Repository interface {
	GetCustom(ctx context.Context, ownerUserID string) (Pet, error)
	SaveCustom(ctx context.Context, p Pet) error
}
