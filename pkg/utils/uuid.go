package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador curto de um lote de importação
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}

func NewUUID() string {
	return uuid.New().String()
}
