package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/onsi/gomega"
)

func TestFormLocalValidationSkipsNetwork(t *testing.T) {
	RegisterTestingT(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	form := NewForm(New(server.URL))
	form.Data = PetFormData{Species: "Cat", BirthDate: "2020-03-15"}

	_, err := form.SubmitCreate(ctx)

	var verr *ValidationError
	Expect(err).To(HaveOccurred())
	Expect(err).To(BeAssignableToTypeOf(verr))
	Expect(calls.Load()).To(Equal(int32(0)))
	Expect(form.State()).To(Equal(Idle))
	Expect(form.Errors()).To(HaveKey("name"))
	Expect(form.Message()).To(Equal("Validation failed"))
}

func TestFormSubmitSuccessResetsState(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Pet created successfully",
			"data":    map[string]any{"id": 1, "name": "Fluffy", "species": "Cat", "birth_date": "2020-03-15"},
		})
	}))
	defer server.Close()

	form := NewForm(New(server.URL))
	form.Data = PetFormData{Name: "Fluffy", Species: "Cat", BirthDate: "2020-03-15"}

	pet, err := form.SubmitCreate(ctx)

	Expect(err).ToNot(HaveOccurred())
	Expect(pet.ID).To(Equal(1))
	Expect(form.State()).To(Equal(Idle))
	Expect(form.Errors()).To(BeNil())
	Expect(form.Message()).To(BeEmpty())
}

func TestFormRejectsConcurrentSubmissions(t *testing.T) {
	RegisterTestingT(t)

	release := make(chan struct{})
	entered := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Pet created successfully",
			"data":    map[string]any{"id": 1, "name": "Fluffy", "species": "Cat", "birth_date": "2020-03-15"},
		})
	}))
	defer server.Close()

	form := NewForm(New(server.URL))
	form.Data = PetFormData{Name: "Fluffy", Species: "Cat", BirthDate: "2020-03-15"}

	done := make(chan error, 1)
	go func() {
		_, err := form.SubmitCreate(ctx)
		done <- err
	}()

	<-entered
	Expect(form.State()).To(Equal(Submitting))

	_, err := form.SubmitCreate(ctx)
	Expect(err).To(MatchError(ErrSubmitInFlight))

	close(release)
	Expect(<-done).ToNot(HaveOccurred())
	Expect(form.State()).To(Equal(Idle))
}

func TestFormRecordsServerValidationFailure(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Validation failed",
			"errors": map[string][]string{
				"death_date": {"The death date field must be a date after birth date."},
			},
		})
	}))
	defer server.Close()

	form := NewForm(New(server.URL))
	// Valid locally; the server is authoritative and can still reject.
	form.Data = PetFormData{Name: "Max", Species: "Dog", BirthDate: "2015-09-03"}

	_, err := form.SubmitUpdate(ctx, 5)

	Expect(err).To(HaveOccurred())
	Expect(form.State()).To(Equal(Idle))
	Expect(form.Errors()).To(HaveKey("death_date"))
	Expect(form.Message()).To(Equal("Validation failed"))
}
