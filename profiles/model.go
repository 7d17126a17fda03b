// Package profiles persists the entity profiles (people, pets) and the
// auxiliary household and contact lists. Entities are the partition keys of
// the record store; their record lists live in the records package and are
// not touched when a profile is deleted.
package profiles

import (
	"time"

	"github.com/google/uuid"
)

// Person is a human profile.
type Person struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pet is an animal profile. Species defaults to "Other" when unknown.
type Pet struct {
	ID          string    `json:"id"`
	PetName     string    `json:"petName"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Household groups profiles sharing an address.
type Household struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact is an address-book entry independent of any profile.
type Contact struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Relationship string    `json:"relationship,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewPerson(fullName string) Person {
	return Person{ID: uuid.NewString(), FullName: fullName, CreatedAt: time.Now().UTC()}
}

func NewPet(petName, species string) Pet {
	return Pet{ID: uuid.NewString(), PetName: petName, Species: species, CreatedAt: time.Now().UTC()}
}

func NewHousehold(name string) Household {
	return Household{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
}

func NewContact(fullName string) Contact {
	return Contact{ID: uuid.NewString(), FullName: fullName, CreatedAt: time.Now().UTC()}
}
