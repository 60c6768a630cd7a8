package domain

import (
	"github.com/google/uuid"
)

type PetType string

const (
	PetDog         PetType = "dog"
	PetCat         PetType = "cat"
	PetBird        PetType = "bird"
	PetSmallAnimal PetType = "small_animal"
	PetOther       PetType = "other"
)

type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

type Pet struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Name       string
	Type       PetType
	Breed      string
	Notes      string
}
