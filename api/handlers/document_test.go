package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalbridge/legalbridge-api/api/handlers"
	"github.com/legalbridge/legalbridge-api/catalog"
	"github.com/legalbridge/legalbridge-api/docgen"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

func newDocumentHandler() handlers.Document {
	return handlers.Document{
		Catalog:     catalog.MustLoad(),
		Collections: store.NewCollections(store.NewMemoryBackend()),
		Now: func() time.Time {
			return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func createDocument(t *testing.T, d handlers.Document, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := asVisitor(httptest.NewRequest("POST", "/api/documents", strings.NewReader(body)), "visitor-1")
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.CreateDocumentHandler).ServeHTTP(rr, req)
	return rr
}

func TestDocument_TemplatesHandler(t *testing.T) {
	d := newDocumentHandler()
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.TemplatesHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/api/templates", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.DocumentTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, len(d.Catalog.Templates))
}

func TestDocument_CreateAndList(t *testing.T) {
	d := newDocumentHandler()

	rr := createDocument(t, d, `{"kind":"legalNotice","fields":{"recipientName":"Ravi","subject":"Unpaid rent","senderName":"Asha"}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var doc models.GeneratedDocument
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "legalNotice", doc.Type)
	assert.Equal(t, "Legal Notice – Unpaid rent", doc.Title)
	assert.Contains(t, doc.Content, "Dear Ravi,")
	assert.Contains(t, doc.Content, "Sincerely,\nAsha")
	assert.Equal(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC).UnixMilli(), doc.ID)

	rr = httptest.NewRecorder()
	http.HandlerFunc(d.DocumentsHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("GET", "/api/documents", nil), "visitor-1"))
	require.Equal(t, http.StatusOK, rr.Code)
	var docs []models.GeneratedDocument
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, doc, docs[0])

	rr = httptest.NewRecorder()
	http.HandlerFunc(d.DocumentsHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("GET", "/api/documents", nil), "visitor-2"))
	assert.Equal(t, "[]", rr.Body.String())
}

func TestDocument_CreateUnknownKind(t *testing.T) {
	d := newDocumentHandler()

	rr := createDocument(t, d, `{"kind":"affidavit","fields":{}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, errorBody(t, "unknown document kind", docgen.ErrUnknownTemplate), rr.Body.String())

	rr = createDocument(t, d, `[`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDocument_Export(t *testing.T) {
	d := newDocumentHandler()
	rr := createDocument(t, d, `{"kind":"legalNotice","fields":{"recipientName":"Ravi"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var doc models.GeneratedDocument
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))

	id := strconv.FormatInt(doc.ID, 10)
	req := asVisitor(httptest.NewRequest("GET", "/api/documents/"+id+"/export", nil), "visitor-1")
	req = mux.SetURLVars(req, map[string]string{"document_id": id})
	rr = httptest.NewRecorder()
	http.HandlerFunc(d.ExportDocumentHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Legal_Notice.txt"`, rr.Header().Get("Content-Disposition"))
	lines := strings.Split(rr.Body.String(), "\n")
	assert.Equal(t, docgen.Brand, lines[0])
	assert.Equal(t, "LEGAL NOTICE", lines[1])
	assert.Equal(t, "Generated on: 10/1/2025", lines[2])
	assert.Contains(t, rr.Body.String(), docgen.DisclaimerLine)
}

func TestDocument_ExportNotFound(t *testing.T) {
	d := newDocumentHandler()

	tests := map[string]int{
		"12345": http.StatusNotFound,
		"abc":   http.StatusBadRequest,
	}
	for id, status := range tests {
		req := asVisitor(httptest.NewRequest("GET", "/api/documents/"+id+"/export", nil), "visitor-1")
		req = mux.SetURLVars(req, map[string]string{"document_id": id})
		rr := httptest.NewRecorder()
		http.HandlerFunc(d.ExportDocumentHandler).ServeHTTP(rr, req)

		assert.Equal(t, status, rr.Code, id)
	}
}
