package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type Profile struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Name          *string  `json:"name"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	City          *string  `json:"city"`
	Lifestyle     *string  `json:"lifestyle"`
	VataScore     *float64 `json:"vata_score"`
	PittaScore    *float64 `json:"pitta_score"`
	KaphaScore    *float64 `json:"kapha_score"`
	DominantDosha *string  `json:"dominant_dosha"`
}

type profileEnvelope struct {
	Profile Profile `json:"profile"`
}

// Quiz is a set of dosha scores submitted together.
type Quiz struct {
	Vata  float64
	Pitta float64
	Kapha float64
}

// RegisterUser creates a new account with a unique email
func (c *APIClient) RegisterUser(baseName, role, password string) (*User, string, error) {
	email := fmt.Sprintf("%s_%s@sim.aura.local", baseName, uuid.NewString()[:8])

	body := map[string]string{
		"name":     baseName,
		"email":    email,
		"password": password,
		"role":     role,
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusCreated, &result); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	return &result.User, result.Token, nil
}

// Login exchanges credentials for a token
func (c *APIClient) Login(email, password string) (*User, string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", body, "", http.StatusOK, &result); err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	return &result.User, result.Token, nil
}

// SaveDetails submits the personal details step of onboarding
func (c *APIClient) SaveDetails(token string, details map[string]interface{}) (*Profile, error) {
	var result profileEnvelope
	if err := c.do(http.MethodPost, "/profile", details, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("save details: %w", err)
	}
	return &result.Profile, nil
}

// SubmitQuiz sends all three scores in one call so the backend derives the
// dominant dosha
func (c *APIClient) SubmitQuiz(token string, quiz Quiz) (*Profile, error) {
	body := map[string]float64{
		"vata_score":  quiz.Vata,
		"pitta_score": quiz.Pitta,
		"kapha_score": quiz.Kapha,
	}

	var result profileEnvelope
	if err := c.do(http.MethodPost, "/profile", body, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("submit quiz: %w", err)
	}
	return &result.Profile, nil
}

// GetProfile fetches the caller's profile
func (c *APIClient) GetProfile(token string) (*Profile, error) {
	var result profileEnvelope
	if err := c.do(http.MethodGet, "/profile/me", nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &result.Profile, nil
}

func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Message string `json:"message"`
		}
		bodyBytes, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
