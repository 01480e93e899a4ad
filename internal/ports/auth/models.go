package auth

// Claims representa la identidad del request.
// En este servicio UserID es el device id del visor.
type Claims struct {
	UserID string
	Email  string
}
