package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"petstore/internal/adapter/database/sqlite/repository"
	"petstore/internal/core/domain"
	"petstore/internal/core/port"
	"petstore/internal/core/telemetry"
	"petstore/pkg/test"
	"petstore/pkg/test/factory"
)

var ctx = context.Background()

type PetServiceSuite struct {
	suite.Suite
	Setup   *test.TestSetup
	Repo    port.PetRepository
	Service *PetService
}

func (s *PetServiceSuite) SetupTest() {
	s.Setup = test.SetupTest(s.T())
	s.Repo = repository.NewPetRepository(s.Setup.DB, telemetry.NewNoOpProbe())
	s.Service = NewPetService(s.Repo, nil)
}

func (s *PetServiceSuite) TearDownTest() {
	test.TeardownTest(s.T(), s.Setup)
}

func TestPetServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(PetServiceSuite))
}

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *domain.Date {
	d := date(s)
	return &d
}

func (s *PetServiceSuite) TestCreateLivingPet() {
	created, err := s.Service.Create(ctx, domain.Pet{
		Name:      "Fluffy",
		Species:   "Cat",
		BirthDate: date("2020-03-15"),
		Note:      "soft fur",
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.DeathDate).To(BeNil())
	Expect(created.Living()).To(BeTrue())
	Expect(created.CreatedAt).ToNot(BeZero())
	Expect(created.UpdatedAt).ToNot(BeZero())
}

func (s *PetServiceSuite) TestCreateRoundTrip() {
	created, err := s.Service.Create(ctx, domain.Pet{
		Name:      "Fluffy",
		Species:   "Cat",
		BirthDate: date("2020-03-15"),
		Note:      "soft fur",
	})
	Expect(err).ToNot(HaveOccurred())

	fetched, err := s.Service.Get(ctx, created.ID)

	Expect(err).ToNot(HaveOccurred())
	Expect(fetched.Name).To(Equal("Fluffy"))
	Expect(fetched.Species).To(Equal("Cat"))
	Expect(fetched.BirthDate.String()).To(Equal("2020-03-15"))
	Expect(fetched.DeathDate).To(BeNil())
	Expect(fetched.Note).To(Equal("soft fur"))
}

func (s *PetServiceSuite) TestCreateDeceasedPet() {
	created, err := s.Service.Create(ctx, domain.Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: date("2015-09-03"),
		DeathDate: datePtr("2024-08-15"),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(created.Living()).To(BeFalse())

	pets, err := s.Service.List(ctx)
	Expect(err).ToNot(HaveOccurred())
	Expect(pets).To(HaveLen(1))
	Expect(pets[0].DeathDate).ToNot(BeNil())
	Expect(pets[0].DeathDate.String()).To(Equal("2024-08-15"))
}

func (s *PetServiceSuite) TestCreateRejectsMissingFields() {
	_, err := s.Service.Create(ctx, domain.Pet{})

	var verr *domain.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())
	Expect(verr.Fields["name"]).To(ContainElement("The name field is required."))
	Expect(verr.Fields["species"]).To(ContainElement("The species field is required."))
	Expect(verr.Fields["birth_date"]).To(ContainElement("The birth date field is required."))

	pets, err := s.Service.List(ctx)
	Expect(err).ToNot(HaveOccurred())
	Expect(pets).To(BeEmpty())
}

func (s *PetServiceSuite) TestCreateRejectsDeathBeforeBirth() {
	_, err := s.Service.Create(ctx, domain.Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: date("2020-05-01"),
		DeathDate: datePtr("2019-01-01"),
	})

	var verr *domain.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())
	Expect(verr.Fields["death_date"]).To(ContainElement("The death date field must be a date after birth date."))

	pets, listErr := s.Service.List(ctx)
	Expect(listErr).ToNot(HaveOccurred())
	Expect(pets).To(BeEmpty(), "a rejected create must persist nothing")
}

func (s *PetServiceSuite) TestCreateRejectsFutureBirth() {
	_, err := s.Service.Create(ctx, domain.Pet{
		Name:      "Fluffy",
		Species:   "Cat",
		BirthDate: date("2999-01-01"),
	})

	var verr *domain.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())
	Expect(verr.Fields["birth_date"]).To(ContainElement("The birth date field must be a date before or equal to today."))
}

func (s *PetServiceSuite) TestCreateRejectsOverlongFields() {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	_, err := s.Service.Create(ctx, domain.Pet{
		Name:      string(long),
		Species:   "Cat",
		BirthDate: date("2020-03-15"),
	})

	var verr *domain.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())
	Expect(verr.Fields["name"]).To(ContainElement("The name field must not be greater than 255 characters."))
}

func (s *PetServiceSuite) TestUpdateReplacesAllFields() {
	created, _ := s.Repo.Create(ctx, factory.NewPet(map[string]any{
		"Name":    "Rex",
		"Species": "Dog",
	}))

	updated, err := s.Service.Update(ctx, domain.Pet{
		ID:        created.ID,
		Name:      "Rex II",
		Species:   "Dog",
		BirthDate: date("2018-01-01"),
		DeathDate: datePtr("2024-08-15"),
		Note:      "updated",
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(updated.Name).To(Equal("Rex II"))
	Expect(updated.BirthDate.String()).To(Equal("2018-01-01"))
	Expect(updated.DeathDate.String()).To(Equal("2024-08-15"))
	Expect(updated.Note).To(Equal("updated"))
	Expect(updated.CreatedAt.Unix()).To(Equal(created.CreatedAt.Unix()))
}

func (s *PetServiceSuite) TestUpdateIsIdempotent() {
	created, _ := s.Repo.Create(ctx, factory.NewPet(map[string]any{
		"Name":    "Rex",
		"Species": "Dog",
	}))

	payload := domain.Pet{
		ID:        created.ID,
		Name:      "Rex",
		Species:   "Dog",
		BirthDate: date("2018-01-01"),
		Note:      "same",
	}

	first, err := s.Service.Update(ctx, payload)
	Expect(err).ToNot(HaveOccurred())

	second, err := s.Service.Update(ctx, payload)
	Expect(err).ToNot(HaveOccurred())

	Expect(second.Name).To(Equal(first.Name))
	Expect(second.Species).To(Equal(first.Species))
	Expect(second.BirthDate.String()).To(Equal(first.BirthDate.String()))
	Expect(second.Note).To(Equal(first.Note))
}

func (s *PetServiceSuite) TestUpdateValidationLeavesRecordUntouched() {
	created, _ := s.Repo.Create(ctx, factory.NewPet(map[string]any{
		"Name":    "Rex",
		"Species": "Dog",
	}))

	_, err := s.Service.Update(ctx, domain.Pet{
		ID:        created.ID,
		Name:      "Rex",
		Species:   "Dog",
		BirthDate: date("2020-05-01"),
		DeathDate: datePtr("2019-01-01"),
	})

	var verr *domain.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())

	current, getErr := s.Service.Get(ctx, created.ID)
	Expect(getErr).ToNot(HaveOccurred())
	Expect(current.Name).To(Equal(created.Name))
	Expect(current.BirthDate.String()).To(Equal(created.BirthDate.String()))
	Expect(current.DeathDate).To(BeNil())
}

func (s *PetServiceSuite) TestUpdateMissingPet() {
	_, err := s.Service.Update(ctx, domain.Pet{
		ID:        9999,
		Name:      "Ghost",
		Species:   "Cat",
		BirthDate: date("2020-03-15"),
	})

	Expect(errors.Is(err, domain.ErrPetNotFound)).To(BeTrue())
}

func (s *PetServiceSuite) TestDeleteReturnsNameAndRemoves() {
	created, _ := s.Repo.Create(ctx, factory.NewPet(map[string]any{
		"Name":    "Rex",
		"Species": "Dog",
	}))

	name, err := s.Service.Delete(ctx, created.ID)

	Expect(err).ToNot(HaveOccurred())
	Expect(name).To(Equal("Rex"))

	_, err = s.Service.Get(ctx, created.ID)
	Expect(errors.Is(err, domain.ErrPetNotFound)).To(BeTrue())
}

func (s *PetServiceSuite) TestDeleteMissingPet() {
	_, err := s.Service.Delete(ctx, 9999)
	Expect(errors.Is(err, domain.ErrPetNotFound)).To(BeTrue())
}

func (s *PetServiceSuite) TestStatisticsInvariants() {
	s.Repo.Create(ctx, factory.NewPet(map[string]any{"Name": "Fluffy", "Species": "Cat"}))
	s.Repo.Create(ctx, factory.NewPet(map[string]any{"Name": "Whiskers", "Species": "Cat"}))
	s.Repo.Create(ctx, factory.NewPet(map[string]any{
		"Name":      "Max",
		"Species":   "Dog",
		"DeathDate": datePtr("2024-08-15"),
	}))

	stats, err := s.Service.Statistics(ctx)

	Expect(err).ToNot(HaveOccurred())
	Expect(stats.TotalPets).To(Equal(3))
	Expect(stats.LivingPets + stats.DeceasedPets).To(Equal(stats.TotalPets))
	Expect(stats.LivingPets).To(Equal(2))
	Expect(stats.DeceasedPets).To(Equal(1))
	Expect(stats.SpeciesCount).To(Equal(2))
	Expect(stats.SpeciesBreakdown).To(HaveLen(2))
	Expect(stats.SpeciesBreakdown[0].Species).To(Equal("Cat"))
	Expect(stats.SpeciesBreakdown[0].Count).To(Equal(2))
}

func (s *PetServiceSuite) TestStatisticsEmptyTable() {
	stats, err := s.Service.Statistics(ctx)

	Expect(err).ToNot(HaveOccurred())
	Expect(stats.TotalPets).To(Equal(0))
	Expect(stats.SpeciesCount).To(Equal(0))
	Expect(stats.SpeciesBreakdown).To(BeEmpty())
}
