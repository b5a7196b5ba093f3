package farmos_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldkit/cli/internal/farmos"
	"fieldkit/cli/internal/farmos/farmostest"
)

func TestAuthenticate_Success(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "s3cret", farmos.Options{})
	token, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "csrf-token-1", token)
	assert.Equal(t, token, c.Token())
	assert.Equal(t, 1, srv.Logins())
}

func TestAuthenticate_WrongPasswordIs403(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "nope", farmos.Options{})
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)

	var he *farmos.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusForbidden, he.Status)
	assert.Equal(t, "Forbidden", he.StatusText)
	assert.Equal(t, "Request failed with status code 403", he.Error())
	assert.Equal(t, http.StatusForbidden, farmos.StatusOf(err))
}

func TestAuthenticate_ServerError(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	srv.LoginStatus = http.StatusBadGateway
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "s3cret", farmos.Options{})
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, farmos.StatusOf(err))
	assert.Equal(t, "Bad Gateway", farmos.StatusTextOf(err))
}

func TestAuthenticate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := farmos.NewHTTPClient(url, "farmer", "s3cret", farmos.Options{})
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)

	var he *farmos.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Zero(t, he.Status)
	assert.Empty(t, he.StatusText)
	assert.NotEmpty(t, he.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestEmptyBaseURLUsesDevOrigin(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	connect := farmos.NewConnector(farmos.Options{DevOrigin: srv.URL + "/"})
	c := connect("", "farmer", "s3cret")
	_, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, c.(*farmos.HTTPClient).BaseURL())
}

func TestInfo_AuthenticatesLazily(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "s3cret", farmos.Options{})
	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Logins())

	assert.Equal(t, "Green Acres", info.Name)
	assert.Equal(t, "https://farm.example.com", info.URL)
	assert.Equal(t, "farmer", info.User.Name)
	assert.Equal(t, "farmer@example.com", info.User.Mail)
	assert.Equal(t, "7", info.User.UID.String())
	assert.Equal(t, "pk.test", info.MapboxAPIKey)
	assert.Equal(t, "us", info.SystemOfMeasurement)
	assert.Equal(t, []farmos.LogType{
		{Name: "farm_activity", Label: "Activity", LabelPlural: "Activities"},
		{Name: "farm_observation", Label: "Observation", LabelPlural: "Observations"},
		{Name: "farm_harvest", Label: "Harvest", LabelPlural: "Harvests"},
	}, info.LogTypes())

	_, err = c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Logins(), "token is reused")
	assert.Equal(t, 2, srv.InfoCalls())
}

func TestInfo_NumericUIDAndArrayLogTypes(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()
	srv.SetFarmJSON(`{
  "name": "Hill Farm",
  "url": "https://hill.example.com",
  "user": {"uid": 42, "name": "farmer", "mail": "farmer@hill.example.com"},
  "system_of_measurement": "metric",
  "resources": {
    "log": [
      {"name": "farm_seeding", "label": "Seeding", "label_plural": "Seedings"},
      {"name": "farm_input", "label": "Input", "label_plural": "Inputs"}
    ]
  }
}`)

	c := farmos.NewHTTPClient(srv.URL, "farmer", "s3cret", farmos.Options{})
	info, err := c.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Hill Farm", info.Name)
	assert.Equal(t, "42", info.User.UID.String())
	assert.Empty(t, info.MapboxAPIKey)
	assert.Equal(t, []farmos.LogType{
		{Name: "farm_seeding", Label: "Seeding", LabelPlural: "Seedings"},
		{Name: "farm_input", Label: "Input", LabelPlural: "Inputs"},
	}, info.LogTypes())
}

func TestInfo_BadCredentials(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "wrong", farmos.Options{})
	_, err := c.Info(context.Background())
	assert.Equal(t, http.StatusForbidden, farmos.StatusOf(err))
	assert.Zero(t, srv.InfoCalls())
}

func TestLogout(t *testing.T) {
	srv := farmostest.New("farmer", "s3cret")
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "farmer", "s3cret", farmos.Options{})
	_, err := c.Authenticate(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, 1, srv.Logouts())
	assert.Empty(t, c.Token())
}

func TestHeaders(t *testing.T) {
	var gotUA, gotCT string
	r := chi.NewRouter()
	r.Post(farmos.PathLogin, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotCT = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := farmos.NewHTTPClient(srv.URL, "u", "p", farmos.Options{UserAgent: "fieldkit-cli/test"})
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fieldkit-cli/test", gotUA)
	assert.Equal(t, "application/x-www-form-urlencoded", gotCT)
}
