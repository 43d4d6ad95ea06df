package factory

import (
	"testing"

	. "github.com/onsi/gomega"

	"petstore/internal/core/domain"
)

func TestNewPetDefaults(t *testing.T) {
	RegisterTestingT(t)

	pet := NewPet()

	Expect(pet.ID).To(Equal(0))
	Expect(pet.BirthDate.String()).To(Equal("2020-01-15"))
	Expect(pet.DeathDate).To(BeNil())
	Expect(pet.Note).To(Equal(""))
	Expect(pet.CreatedAt).ToNot(BeZero())
	Expect(pet.UpdatedAt).ToNot(BeZero())
}

func TestNewPetAppliesOverrides(t *testing.T) {
	RegisterTestingT(t)

	death, err := domain.ParseDate("2024-08-15")
	Expect(err).ToNot(HaveOccurred())

	pet := NewPet(map[string]any{
		"Name":      "Fluffy",
		"Species":   "Cat",
		"DeathDate": &death,
		"Note":      "soft fur",
	})

	Expect(pet.Name).To(Equal("Fluffy"))
	Expect(pet.Species).To(Equal("Cat"))
	Expect(pet.DeathDate).ToNot(BeNil())
	Expect(pet.DeathDate.String()).To(Equal("2024-08-15"))
	Expect(pet.Note).To(Equal("soft fur"))
	Expect(pet.BirthDate.String()).To(Equal("2020-01-15"))
}

func TestNewPetMergesMultipleOverrideMaps(t *testing.T) {
	RegisterTestingT(t)

	pet := NewPet(
		map[string]any{"Name": "Rex", "Species": "Dog"},
		map[string]any{"Name": "Rex II"},
	)

	Expect(pet.Name).To(Equal("Rex II"))
	Expect(pet.Species).To(Equal("Dog"))
}
