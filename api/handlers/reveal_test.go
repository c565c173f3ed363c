package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/legalbridge/legalbridge-api/api/handlers"
	"github.com/legalbridge/legalbridge-api/catalog"
	mocksdb "github.com/legalbridge/legalbridge-api/databases/mocks"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/reveal"
	"github.com/legalbridge/legalbridge-api/store"
)

const delhi = "Delhi State Legal Services Authority"

type revealFixture struct {
	handler     handlers.Reveal
	service     *reveal.Service
	notifier    *capturingNotifier
	collections *store.Collections
}

func newRevealFixture(t *testing.T) *revealFixture {
	t.Helper()
	contacts := &mocksdb.ContactDatabase{}
	contacts.On("InsertOne", mock.Anything, mock.Anything).Return(uint(1), nil).Maybe()

	notifier := &capturingNotifier{}
	collections := store.NewCollections(store.NewMemoryBackend())
	svc := reveal.NewService(catalog.MustLoad(), newMemSessions(), contacts, collections, notifier, nil, 0)
	svc.HashCost = bcrypt.MinCost
	svc.NewCode = func() (string, error) { return "482913", nil }

	return &revealFixture{
		handler:     handlers.Reveal{Service: svc},
		service:     svc,
		notifier:    notifier,
		collections: collections,
	}
}

func (f *revealFixture) do(t *testing.T, h http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = asVisitor(req, "visitor-1")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func (f *revealFixture) start(t *testing.T) string {
	t.Helper()
	rr := f.do(t, f.handler.StartRevealHandler, "POST", "/api/reveal", `{"organisation":"`+delhi+`"}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var session models.PendingVerification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, string(reveal.CollectingDetails), session.State)
	return session.ID
}

func TestReveal_FullFlow(t *testing.T) {
	f := newRevealFixture(t)
	id := f.start(t)
	vars := map[string]string{"session_id": id}

	rr := f.do(t, f.handler.RevealDetailsHandler, "POST", "/api/reveal/"+id+"/details", `{"name":"Asha","contact":"9876543210"}`, vars)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "482913")
	assert.NotContains(t, rr.Body.String(), "codeHash")
	f.service.Wait()
	assert.Equal(t, "482913", f.notifier.last().Code)

	rr = f.do(t, f.handler.ConfirmRevealHandler, "POST", "/api/reveal/"+id+"/confirm", `{"code":"000000"}`, vars)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, errorBody(t, "incorrect code", reveal.ErrCodeMismatch), rr.Body.String())

	rr = f.do(t, f.handler.ConfirmRevealHandler, "POST", "/api/reveal/"+id+"/confirm", `{"code":"482913"}`, vars)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var org models.Organization
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &org))
	assert.Equal(t, delhi, org.Name)
	assert.NotEmpty(t, org.Phone)

	revealed, err := f.collections.Revealed.Load(t.Context(), store.Scope("visitor-1"))
	require.NoError(t, err)
	assert.True(t, revealed[delhi])

	rr = f.do(t, f.handler.ConfirmRevealHandler, "POST", "/api/reveal/"+id+"/confirm", `{"code":"482913"}`, vars)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestReveal_ConcurrentConfirmCountsOnce(t *testing.T) {
	f := newRevealFixture(t)
	id := f.start(t)
	vars := map[string]string{"session_id": id}

	rr := f.do(t, f.handler.RevealDetailsHandler, "POST", "/api/reveal/"+id+"/details", `{"name":"Asha","contact":"9876543210"}`, vars)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	f.service.Wait()

	codes := make([]int, 8)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = f.do(t, f.handler.ConfirmRevealHandler, "POST", "/api/reveal/"+id+"/confirm", `{"code":"482913"}`, vars).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		if code == http.StatusOK {
			ok++
			continue
		}
		assert.Equal(t, http.StatusConflict, code)
	}
	assert.Equal(t, 1, ok)

	counts, err := f.collections.ContactCounts.Load(t.Context(), store.Scope("visitor-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, counts[delhi])
	log, err := f.collections.ContactLog.Load(t.Context(), store.Scope("visitor-1"))
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestReveal_StartErrors(t *testing.T) {
	f := newRevealFixture(t)

	rr := f.do(t, f.handler.StartRevealHandler, "POST", "/api/reveal", `{"organisation":"Nowhere Clinic"}`, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, errorBody(t, "unknown organisation", reveal.ErrUnknownOrganisation), rr.Body.String())

	rr = f.do(t, f.handler.StartRevealHandler, "POST", "/api/reveal", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReveal_DetailsErrors(t *testing.T) {
	f := newRevealFixture(t)
	id := f.start(t)
	vars := map[string]string{"session_id": id}

	rr := f.do(t, f.handler.RevealDetailsHandler, "POST", "/api/reveal/"+id+"/details", `{"name":"  ","contact":"9876543210"}`, vars)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, f.handler.RevealDetailsHandler, "POST", "/api/reveal/missing/details", `{"name":"Asha","contact":"1"}`,
		map[string]string{"session_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, f.handler.ConfirmRevealHandler, "POST", "/api/reveal/"+id+"/confirm", `{"code":"482913"}`, vars)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestReveal_SessionBelongsToVisitor(t *testing.T) {
	f := newRevealFixture(t)
	id := f.start(t)

	req := httptest.NewRequest("DELETE", "/api/reveal/"+id, nil)
	req = asVisitor(req, "visitor-2")
	req = mux.SetURLVars(req, map[string]string{"session_id": id})
	rr := httptest.NewRecorder()
	http.HandlerFunc(f.handler.CancelRevealHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReveal_Cancel(t *testing.T) {
	f := newRevealFixture(t)
	id := f.start(t)
	vars := map[string]string{"session_id": id}

	rr := f.do(t, f.handler.CancelRevealHandler, "DELETE", "/api/reveal/"+id, "", vars)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, f.handler.RevealDetailsHandler, "POST", "/api/reveal/"+id+"/details", `{"name":"Asha","contact":"1"}`, vars)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	counts, err := f.collections.ContactCounts.Load(t.Context(), store.Scope("visitor-1"))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestReveal_RequiresVisitor(t *testing.T) {
	f := newRevealFixture(t)
	rr := httptest.NewRecorder()
	http.HandlerFunc(f.handler.StartRevealHandler).ServeHTTP(rr, httptest.NewRequest("POST", "/api/reveal", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
