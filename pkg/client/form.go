package client

import (
	"context"
	"errors"
	"sync"
)

type SubmitState int

const (
	Idle SubmitState = iota
	Submitting
)

// ErrSubmitInFlight is returned when a form is submitted while a previous
// submission has not finished.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Form tracks one create-or-edit form. It validates locally before calling
// the API, allows at most one in-flight submission, and keeps the last
// failure so the caller can render it.
type Form struct {
	client *Client

	mu      sync.Mutex
	state   SubmitState
	errors  map[string][]string
	message string

	Data PetFormData
}

func NewForm(client *Client) *Form {
	return &Form{client: client}
}

func (f *Form) State() SubmitState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns the field errors from the last failed submission.
func (f *Form) Errors() map[string][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

// Message returns the user-facing message from the last failed submission.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *Form) SubmitCreate(ctx context.Context) (Pet, error) {
	return f.submit(ctx, func(ctx context.Context) (Pet, error) {
		return f.client.CreatePet(ctx, f.Data)
	})
}

func (f *Form) SubmitUpdate(ctx context.Context, id int) (Pet, error) {
	return f.submit(ctx, func(ctx context.Context) (Pet, error) {
		return f.client.UpdatePet(ctx, id, f.Data)
	})
}

func (f *Form) submit(ctx context.Context, send func(context.Context) (Pet, error)) (Pet, error) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return Pet{}, ErrSubmitInFlight
	}
	f.state = Submitting
	f.errors = nil
	f.message = ""
	data := f.Data
	f.mu.Unlock()

	if fields := Validate(data); fields != nil {
		err := &ValidationError{Message: "Validation failed", Fields: fields}
		f.finish(err)
		return Pet{}, err
	}

	pet, err := send(ctx)
	f.finish(err)

	if err != nil {
		return Pet{}, err
	}

	return pet, nil
}

func (f *Form) finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = Idle

	if err == nil {
		return
	}

	f.message = ErrorMessage(err)

	var verr *ValidationError
	if errors.As(err, &verr) {
		f.errors = verr.Fields
	}
}
