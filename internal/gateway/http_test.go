package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTClientCreateCustomer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("missing or wrong basic auth: %q/%q", user, pass)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["name"] != "Asha" {
			t.Errorf("expected name Asha, got %v", body["name"])
		}

		json.NewEncoder(w).Encode(Customer{ID: "cust_1", Name: "Asha", Email: "a@x.com", Contact: "9000000000"})
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "key_id", "key_secret")

	cust, err := client.CreateCustomer(context.Background(), CustomerParams{
		Name:    "Asha",
		Email:   "a@x.com",
		Contact: "9000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.ID != "cust_1" {
		t.Fatalf("expected customer id cust_1, got %q", cust.ID)
	}
}

func TestRESTClientParsesProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Contact is not valid"}}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "k", "s")

	_, err := client.CreateCustomer(context.Background(), CustomerParams{Name: "x"})
	if err == nil {
		t.Fatal("expected error")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *gateway.Error, got %T", err)
	}
	if gerr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", gerr.StatusCode)
	}
	if gerr.Code != "BAD_REQUEST_ERROR" {
		t.Errorf("expected code BAD_REQUEST_ERROR, got %q", gerr.Code)
	}
	if gerr.Error() != "Contact is not valid" {
		t.Errorf("expected description surfaced, got %q", gerr.Error())
	}
}

func TestRESTClientNonJSONErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "k", "s")

	_, err := client.FetchCustomer(context.Background(), "cust_1")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *gateway.Error, got %T", err)
	}
	if gerr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", gerr.StatusCode)
	}
	if gerr.Code != "" {
		t.Errorf("expected empty code, got %q", gerr.Code)
	}
}

func TestRESTClientDeleteToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/customers/cust_1/tokens/token_9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"deleted":true}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "k", "s")

	if err := client.DeleteToken(context.Background(), "cust_1", "token_9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "status_404", err: &Error{StatusCode: 404}, want: true},
		{name: "code_not_found", err: &Error{StatusCode: 400, Code: "NOT_FOUND_ERROR"}, want: true},
		{name: "server_error", err: &Error{StatusCode: 500}, want: false},
		{name: "plain_error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsNotFound(tt.err); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
