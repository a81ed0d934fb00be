package application

import "github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"

// PasswordHasher turns validated passwords into stored hashes.
// *service.PasswordService satisfies it.
//
//go:generate mockgen -package mockapplication -source=ports.go -destination=mock/mockapplication.go
type PasswordHasher interface {
	Hash(p valueobject.Password) (string, error)
	Verify(p valueobject.Password, storedHash string) bool
}
