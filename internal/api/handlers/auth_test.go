package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/dom/aura-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("existing@example.test").
		Build(t, ts.Repos.User)

	tests := []struct {
		name            string
		request         map[string]string
		expectedStatus  int
		expectedMessage string
		checkResponse   func(*testing.T, testutil.AuthResponse)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"name":     "Asha",
				"email":    "asha@example.test",
				"password": "password123",
				"role":     "user",
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "User registered successfully",
			checkResponse: func(t *testing.T, result testutil.AuthResponse) {
				assert.NotEmpty(t, result.User.ID)
				assert.Equal(t, "Asha", result.User.Name)
				assert.Equal(t, "asha@example.test", result.User.Email)
				assert.Equal(t, "user", result.User.Role)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "doctor registration",
			request: map[string]string{
				"name":     "Dr Rao",
				"email":    "rao@example.test",
				"password": "password123",
				"role":     "doctor",
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "User registered successfully",
			checkResponse: func(t *testing.T, result testutil.AuthResponse) {
				assert.Equal(t, "doctor", result.User.Role)
			},
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":    "a@example.test",
				"password": "password123",
				"role":     "user",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name: "missing role",
			request: map[string]string{
				"name":     "A",
				"email":    "a@example.test",
				"password": "password123",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name: "empty strings count as missing",
			request: map[string]string{
				"name":     "",
				"email":    "a@example.test",
				"password": "password123",
				"role":     "user",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name:            "empty request body",
			request:         map[string]string{},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name: "password longer than 72 bytes",
			request: map[string]string{
				"name":     "Long",
				"email":    "long@example.test",
				"password": strings.Repeat("p", 73),
				"role":     "user",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Password must be at most 72 bytes",
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"name":     "Someone",
				"email":    "existing@example.test",
				"password": "password123",
				"role":     "doctor",
			},
			expectedStatus:  http.StatusConflict,
			expectedMessage: "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/register"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var result testutil.AuthResponse
			require.NoError(t, json.Unmarshal(body, &result))
			assert.Equal(t, tt.expectedMessage, result.Message)

			if tt.checkResponse != nil {
				testutil.AssertNoSecrets(t, body)
				tt.checkResponse(t, result)
			}
		})
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", strings.NewReader(`{"name":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request body")
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.test").
		WithPassword("correctpassword").
		WithRole(domain.RoleDoctor).
		Build(t, ts.Repos.User)

	tests := []struct {
		name            string
		request         map[string]string
		expectedStatus  int
		expectedMessage string
		checkResponse   func(*testing.T, testutil.AuthResponse)
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Login successful",
			checkResponse: func(t *testing.T, result testutil.AuthResponse) {
				assert.Equal(t, user.ID.String(), result.User.ID)
				assert.Equal(t, user.Name, result.User.Name)
				assert.Equal(t, "doctor", result.User.Role)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    user.Email,
				"password": "wrongpassword",
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid credentials",
		},
		{
			name: "non-existent user",
			request: map[string]string{
				"email":    "nobody@example.test",
				"password": "password123",
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid credentials",
		},
		{
			name: "missing password",
			request: map[string]string{
				"email": user.Email,
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Email and password required",
		},
		{
			name:            "empty request body",
			request:         map[string]string{},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Email and password required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/login"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var result testutil.AuthResponse
			require.NoError(t, json.Unmarshal(body, &result))
			assert.Equal(t, tt.expectedMessage, result.Message)

			if tt.checkResponse != nil {
				testutil.AssertNoSecrets(t, body)
				tt.checkResponse(t, result)
			}
		})
	}
}

func TestAuthHandler_RegisterThenLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"name":     "Flow",
		"email":    "flow@example.test",
		"password": "password123",
		"role":     "user",
	})
	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)
	resp.Body.Close()

	resp = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "flow@example.test",
		"password": "password123",
	})
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var loggedIn testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithName("Current").
		BuildAndAuthenticate(t, ts)

	t.Run("returns the authenticated user", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		testutil.AssertNoSecrets(t, body)

		var result struct {
			User struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		assert.Equal(t, user.ID.String(), result.User.ID)
		assert.Equal(t, "Current", result.User.Name)
	})

	t.Run("requires a token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/auth/me"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Authorization header required")
	})
}
