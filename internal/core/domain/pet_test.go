package domain

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func mustDate(t *testing.T, value string) Date {
	t.Helper()

	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", value, err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	RegisterTestingT(t)

	d, err := ParseDate("2020-03-15")

	Expect(err).ToNot(HaveOccurred())
	Expect(d.String()).To(Equal("2020-03-15"))
	Expect(d.Year()).To(Equal(2020))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	RegisterTestingT(t)

	_, err := ParseDate("15/03/2020")
	Expect(err).To(HaveOccurred())

	_, err = ParseDate("not-a-date")
	Expect(err).To(HaveOccurred())
}

func TestDateOfTruncatesTimeOfDay(t *testing.T) {
	RegisterTestingT(t)

	d := DateOf(time.Date(2020, 3, 15, 23, 59, 58, 0, time.UTC))

	Expect(d.String()).To(Equal("2020-03-15"))
	Expect(d.Hour()).To(Equal(0))
}

func TestDateComparisons(t *testing.T) {
	RegisterTestingT(t)

	earlier := DateOf(time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))
	later := DateOf(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC))

	Expect(later.AfterDate(earlier)).To(BeTrue())
	Expect(earlier.BeforeDate(later)).To(BeTrue())
	Expect(earlier.AfterDate(earlier)).To(BeFalse())
}

func TestDateJSONRoundTrip(t *testing.T) {
	RegisterTestingT(t)

	d := mustDate(t, "2020-03-15")

	raw, err := json.Marshal(d)
	Expect(err).ToNot(HaveOccurred())
	Expect(string(raw)).To(Equal(`"2020-03-15"`))

	var back Date
	Expect(json.Unmarshal(raw, &back)).To(Succeed())
	Expect(back.String()).To(Equal("2020-03-15"))
}

func TestDateScanVariants(t *testing.T) {
	RegisterTestingT(t)

	var d Date

	Expect(d.Scan(time.Date(2020, 3, 15, 10, 30, 0, 0, time.UTC))).To(Succeed())
	Expect(d.String()).To(Equal("2020-03-15"))

	Expect(d.Scan("2015-09-03")).To(Succeed())
	Expect(d.String()).To(Equal("2015-09-03"))

	Expect(d.Scan([]byte("2024-08-15"))).To(Succeed())
	Expect(d.String()).To(Equal("2024-08-15"))

	Expect(d.Scan(nil)).To(Succeed())
	Expect(d.IsZero()).To(BeTrue())

	Expect(d.Scan(42)).ToNot(Succeed())
}

func TestLivingClassification(t *testing.T) {
	RegisterTestingT(t)

	pet := Pet{Name: "Fluffy", Species: "Cat", BirthDate: mustDate(t, "2020-03-15")}
	Expect(pet.Living()).To(BeTrue())

	death := mustDate(t, "2024-08-15")
	pet.DeathDate = &death
	Expect(pet.Living()).To(BeFalse())
}

func TestValidateDatesFutureBirth(t *testing.T) {
	RegisterTestingT(t)

	today := mustDate(t, "2026-08-29")
	pet := Pet{Name: "Fluffy", Species: "Cat", BirthDate: mustDate(t, "2999-01-01")}

	errs := pet.ValidateDates(today)

	Expect(errs.HasErrors()).To(BeTrue())
	Expect(errs["birth_date"]).To(ContainElement("The birth date field must be a date before or equal to today."))
}

func TestValidateDatesDeathNotAfterBirth(t *testing.T) {
	RegisterTestingT(t)

	today := mustDate(t, "2026-08-29")
	death := mustDate(t, "2020-03-15")
	pet := Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: mustDate(t, "2020-03-15"),
		DeathDate: &death,
	}

	errs := pet.ValidateDates(today)

	Expect(errs["death_date"]).To(ContainElement("The death date field must be a date after birth date."))
}

func TestValidateDatesFutureDeath(t *testing.T) {
	RegisterTestingT(t)

	today := mustDate(t, "2026-08-29")
	death := mustDate(t, "2999-01-01")
	pet := Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: mustDate(t, "2015-09-03"),
		DeathDate: &death,
	}

	errs := pet.ValidateDates(today)

	Expect(errs["death_date"]).To(ContainElement("The death date field must be a date before or equal to today."))
}

func TestValidateDatesAccepted(t *testing.T) {
	RegisterTestingT(t)

	today := mustDate(t, "2026-08-29")
	death := mustDate(t, "2024-08-15")
	pet := Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: mustDate(t, "2015-09-03"),
		DeathDate: &death,
	}

	Expect(pet.ValidateDates(today).HasErrors()).To(BeFalse())
}

func TestFieldErrorsAccumulate(t *testing.T) {
	RegisterTestingT(t)

	errs := FieldErrors{}
	Expect(errs.HasErrors()).To(BeFalse())

	errs.Add("name", "The name field is required.")
	errs.Add("name", "The name field must not be greater than 255 characters.")

	Expect(errs.HasErrors()).To(BeTrue())
	Expect(errs["name"]).To(HaveLen(2))
}

func TestToMapCarriesAllMutableColumns(t *testing.T) {
	RegisterTestingT(t)

	death := mustDate(t, "2024-08-15")
	pet := Pet{
		Name:      "Max",
		Species:   "Dog",
		BirthDate: mustDate(t, "2015-09-03"),
		DeathDate: &death,
		Note:      "good boy",
		UpdatedAt: time.Now(),
	}

	m := pet.ToMap()

	Expect(m["name"]).To(Equal("Max"))
	Expect(m["birth_date"]).To(Equal("2015-09-03"))
	Expect(m["death_date"]).To(Equal("2024-08-15"))

	pet.DeathDate = nil
	Expect(pet.ToMap()["death_date"]).To(BeNil())
}
