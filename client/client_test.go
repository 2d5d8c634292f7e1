package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybar-app/gateway/models"
)

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://backend.local/", "key")
	assert.Equal(t, "http://backend.local", c.BaseURL)
}

func TestDoSendsSessionCookie(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("easybar_session"); err == nil {
			gotCookie = cookie.Value
		}
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "s3cr3t")
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", gotCookie)
}

func TestDoOmitsCookieWithoutSessionKey(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("easybar_session")
		sawCookie = err == nil
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, sawCookie)
}

func TestDoMaps404ToErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	_, err := c.GetTab(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoWrapsOtherFailuresAsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"mesa invalida"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	_, err := c.CreateTab(context.Background(), NewTab{TableNumber: 0})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Code)
	assert.Contains(t, statusErr.Body, "mesa invalida")
}

func TestListTabsByOwnerUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comandas/dono/user-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []models.Tab{
				{ID: "tab-1", Status: models.TabOpen, TableNumber: 4},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	tabs, err := c.ListTabsByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "tab-1", tabs[0].ID)
	assert.Equal(t, 4, tabs[0].TableNumber)
}

func TestListTabsByOwnerRejectsUnsuccessfulEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	_, err := c.ListTabsByOwner(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestCreateTabPostsWireNames(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(models.Tab{ID: "tab-new", Status: models.TabOpen})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	tab, err := c.CreateTab(context.Background(), NewTab{
		TableNumber: 7,
		OwnerID:     "user-1",
		Status:      models.TabOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, "tab-new", tab.ID)

	assert.Equal(t, float64(7), body["mesa"])
	assert.Equal(t, "user-1", body["dono"])
	assert.Equal(t, float64(models.TabOpen), body["status"])
}

func TestUpdateTabOmitsUnsetFields(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(models.Tab{ID: "tab-1", Status: models.TabClosed})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	status := models.TabClosed
	_, err := c.UpdateTab(context.Background(), "tab-1", TabUpdate{Status: &status})
	require.NoError(t, err)

	assert.Contains(t, body, "status")
	assert.NotContains(t, body, "formaPagamento")
}

func TestGetUserDecodesWireNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usuarios/ext-1", r.URL.Path)
		w.Write([]byte(`{"_id":"ext-1","nome":"Ana","tipo":"cliente","ativo":true}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	user, err := c.GetUser(context.Background(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, models.RoleCliente, user.Role)
	assert.True(t, user.Active)
}
