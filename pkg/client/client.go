package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// FallbackMessage is shown when the server never produced a usable response.
const FallbackMessage = "An unexpected error occurred. Please try again."

// Session carries the caller's auth context. It is passed in explicitly so
// callers can run several independent sessions side by side.
type Session struct {
	Token string
}

type Pet struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	BirthDate string    `json:"birth_date"`
	DeathDate *string   `json:"death_date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Living reports whether the record has no death date.
func (p Pet) Living() bool {
	return p.DeathDate == nil
}

type SpeciesCount struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

type Statistics struct {
	TotalPets        int            `json:"total_pets"`
	LivingPets       int            `json:"living_pets"`
	DeceasedPets     int            `json:"deceased_pets"`
	SpeciesCount     int            `json:"species_count"`
	SpeciesBreakdown []SpeciesCount `json:"species_breakdown"`
}

type Health struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type PetFormData struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	BirthDate string  `json:"birth_date"`
	DeathDate *string `json:"death_date,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// ValidationError carries the per-field messages from a 422 response or from
// local pre-submit validation.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// APIError is any non-2xx response that is neither 404 nor 422.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// TransportError means the request never completed; the server state is
// unknown and the caller may retry manually.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return FallbackMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithSession(s *Session) Option {
	return func(c *Client) {
		c.session = s
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) (string, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return "", &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}
			}
		}
		return env.Message, nil

	case resp.StatusCode == http.StatusNotFound:
		message := env.Message
		if message == "" {
			message = "Pet not found"
		}
		return "", &NotFoundError{Message: message}

	case resp.StatusCode == http.StatusUnprocessableEntity:
		message := env.Message
		if message == "" {
			message = "Validation failed"
		}
		return "", &ValidationError{Message: message, Fields: env.Errors}

	default:
		message := env.Message
		if message == "" {
			message = FallbackMessage
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: message}
	}
}

func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	_, err := c.do(ctx, http.MethodGet, "/pets", nil, &pets)
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (c *Client) GetPet(ctx context.Context, id int) (Pet, error) {
	var pet Pet
	_, err := c.do(ctx, http.MethodGet, "/pets/"+strconv.Itoa(id), nil, &pet)
	if err != nil {
		return Pet{}, err
	}
	return pet, nil
}

func (c *Client) CreatePet(ctx context.Context, form PetFormData) (Pet, error) {
	var pet Pet
	_, err := c.do(ctx, http.MethodPost, "/pets", form, &pet)
	if err != nil {
		return Pet{}, err
	}
	return pet, nil
}

func (c *Client) UpdatePet(ctx context.Context, id int, form PetFormData) (Pet, error) {
	var pet Pet
	_, err := c.do(ctx, http.MethodPut, "/pets/"+strconv.Itoa(id), form, &pet)
	if err != nil {
		return Pet{}, err
	}
	return pet, nil
}

// DeletePet returns the confirmation message, which names the deleted pet.
func (c *Client) DeletePet(ctx context.Context, id int) (string, error) {
	return c.do(ctx, http.MethodDelete, "/pets/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	_, err := c.do(ctx, http.MethodGet, "/pets-statistics", nil, &stats)
	if err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Health{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var health Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Health{}, &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}
	}

	return health, nil
}

// ErrorMessage maps any client error to the text a user should see.
func ErrorMessage(err error) string {
	switch e := err.(type) {
	case *ValidationError:
		return e.Message
	case *NotFoundError:
		return e.Message
	case *APIError:
		return e.Message
	case *TransportError:
		return FallbackMessage
	default:
		if err != nil {
			return FallbackMessage
		}
		return ""
	}
}
