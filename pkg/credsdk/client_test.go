package credsdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupSendsForm(t *testing.T) {
	t.Parallel()

	lat := -33.86
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/signup", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "a@acme.com", r.PostForm.Get("email"))
		require.Equal(t, "Sydney", r.PostForm.Get("city"))
		require.Equal(t, "on", r.PostForm.Get("show_real_name"))
		require.Equal(t, "-33.86", r.PostForm.Get("latitude"))
		require.Empty(t, r.PostForm.Get("area"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","next":"verify","pending_token":"pt","waitlisted":true}`))
	}))
	t.Cleanup(srv.Close)

	resp, err := NewClient(srv.URL+"/").Signup(context.Background(), SignupRequest{
		Email:        "a@acme.com",
		Password:     "pw",
		City:         "Sydney",
		ShowRealName: true,
		Latitude:     &lat,
	})
	require.NoError(t, err)
	require.Equal(t, NextVerify, resp.Next)
	require.Equal(t, "pt", resp.PendingToken)
	require.True(t, resp.Waitlisted)
}

func TestErrorsAreParsed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/login":
			NewAPIError(http.StatusForbidden, ErrorCodeEmailNotVerified, "Please verify your email first.").
				WithNext(NextVerify, "fresh-token").WriteError(w)
		case "/v1/signup":
			e := NewAPIError(http.StatusBadRequest, ErrorCodeValidation, "City is required.")
			e.Field = "city"
			e.WriteError(w)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@acme.com", "pw", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, NextVerify, apiErr.Next)
	require.Equal(t, "fresh-token", apiErr.PendingToken)
	require.True(t, IsCode(err, ErrorCodeEmailNotVerified))

	_, err = c.Signup(ctx, SignupRequest{})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "city", apiErr.Field)

	_, err = c.GetLiveness(ctx)
	require.True(t, IsCode(err, ErrorCodeServerError))
}

func TestSessionSendsBearer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/admin/users":
			require.Equal(t, "waitlist", r.URL.Query().Get("status"))
			require.Equal(t, "true", r.URL.Query().Get("verified"))
			_, _ = w.Write([]byte(`{"users":[{"id":"u1","status":"waitlist"}]}`))
		case "/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(srv.Close)

	s := NewClient(srv.URL).NewSession("tok")
	verified := true
	users, err := s.ListUsers(context.Background(), UserQuery{Status: "waitlist", Verified: &verified})
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, s.Logout(context.Background()))
}
