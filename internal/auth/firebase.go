package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vocabmaster/api/internal/model"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts"

var (
	// ErrEmailExists is returned when signing up with an address that
	// already has an account.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials covers wrong password, unknown user and
	// disabled accounts; the provider is deliberately vague and so are we.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrWeakPassword is returned when the provider rejects the password.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// FirebaseAuth signs users up and in through the identity provider's REST
// API. It never stores credentials; the provider owns the account.
type FirebaseAuth struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFirebaseAuth(apiKey string) *FirebaseAuth {
	return &FirebaseAuth{
		apiKey:  apiKey,
		baseURL: identityToolkitURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type identityResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Error       struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp creates a new email/password account.
func (a *FirebaseAuth) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	return a.call(ctx, "signUp", map[string]interface{}{
		"email":             email,
		"password":          password,
		"displayName":       name,
		"returnSecureToken": true,
	})
}

// SignIn authenticates an existing email/password account.
func (a *FirebaseAuth) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	return a.call(ctx, "signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

func (a *FirebaseAuth) call(ctx context.Context, action string, payload map[string]interface{}) (*model.User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s:%s?key=%s", a.baseURL, action, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var data identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("identity provider returned invalid response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapIdentityError(data.Error.Message)
	}

	return &model.User{
		ID:    data.LocalID,
		Email: data.Email,
		Name:  data.DisplayName,
	}, nil
}

func mapIdentityError(message string) error {
	switch {
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return ErrEmailExists
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return ErrWeakPassword
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("identity provider error: %s", message)
	}
}
