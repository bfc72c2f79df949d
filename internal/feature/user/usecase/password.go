package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder turns the submitted password into the stored credential.
type PasswordEncoder interface {
	Encode(password string) (string, error)
}

// PlainPasswordEncoder stores passwords as submitted.
type PlainPasswordEncoder struct{}

func (PlainPasswordEncoder) Encode(password string) (string, error) {
	return password, nil
}

// BcryptPasswordEncoder stores bcrypt hashes. Selected with PASSWORD_ENCODING=bcrypt.
type BcryptPasswordEncoder struct {
	Cost int
}

func (e BcryptPasswordEncoder) Encode(password string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// NewPasswordEncoder returns the encoder for a PASSWORD_ENCODING value.
// Anything other than "bcrypt" keeps passwords as submitted.
func NewPasswordEncoder(mode string) PasswordEncoder {
	if mode == "bcrypt" {
		return BcryptPasswordEncoder{}
	}
	return PlainPasswordEncoder{}
}
