package contact

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"oasis/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(h *Handlers, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)), nil)
	return rec
}

func TestSubmitStoresMessage(t *testing.T) {
	store := db.NewMemoryStore()
	rec := post(NewHandlers(store), `{"fullName":"Ana","email":"ana@example.com","subject":"Pets","message":"Can I bring my dog?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"thanks for your message, we will contact you soon"}`, rec.Body.String())
	msgs := store.ContactMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Pets", msgs[0].Subject)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestSubmitRequiresAllFields(t *testing.T) {
	store := db.NewMemoryStore()
	rec := post(NewHandlers(store), `{"fullName":"Ana","email":"ana@example.com","subject":"Pets"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"fullName, email, subject, message are required"}`, rec.Body.String())
	assert.Empty(t, store.ContactMessages())

	assert.Equal(t, http.StatusBadRequest, post(NewHandlers(store), `not json`).Code)
}

func TestSubmitStoreFailure(t *testing.T) {
	store := db.NewMemoryStore()
	store.Fail = func(string) error { return errors.New("down") }
	rec := post(NewHandlers(store), `{"fullName":"Ana","email":"a@b.c","subject":"s","message":"m"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
