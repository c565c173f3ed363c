package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/catalog"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/docgen"
	"github.com/legalbridge/legalbridge-api/metrics"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

// Document handles template and generated document requests
type Document struct {
	Catalog     *catalog.Catalog
	Collections *store.Collections
	Layout      docgen.PageLayout
	Now         func() time.Time
}

type createDocumentRequest struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// TemplatesHandler returns the document template catalog
func (d Document) TemplatesHandler(w http.ResponseWriter, r *http.Request) {
	templates := d.Catalog.Templates
	if templates == nil {
		templates = []models.DocumentTemplate{}
	}
	api.WriteJSON(w, http.StatusOK, templates)
}

// CreateDocumentHandler fills a template and appends the result to the
// visitor's document log
func (d Document) CreateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	doc, err := docgen.Generate(d.Catalog, req.Kind, req.Fields, now())
	if errors.Is(err, docgen.ErrUnknownTemplate) {
		config.ErrorStatus("unknown document kind", http.StatusBadRequest, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to generate document", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	scope := store.Scope(visitor)
	docs, err := d.Collections.Documents.Load(ctx, scope)
	if err != nil {
		config.ErrorStatus("failed to load documents", http.StatusInternalServerError, w, err)
		return
	}
	if err := d.Collections.Documents.Save(ctx, scope, append(docs, doc)); err != nil {
		config.ErrorStatus("failed to save document", http.StatusInternalServerError, w, err)
		return
	}
	metrics.DocumentsGenerated.WithLabelValues(doc.Type).Inc()
	zap.S().Debugw("generated document", "visitor", visitor, "kind", doc.Type)

	api.WriteJSON(w, http.StatusOK, doc)
}

// DocumentsHandler returns the visitor's generated documents in creation order
func (d Document) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := d.Collections.Documents.Load(ctx, store.Scope(visitor))
	if err != nil {
		config.ErrorStatus("failed to load documents", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, docs)
}

// ExportDocumentHandler renders a generated document as a paginated plain text
// download
func (d Document) ExportDocumentHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["document_id"], 10, 64)
	if err != nil {
		config.ErrorStatus("invalid document id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := d.Collections.Documents.Load(ctx, store.Scope(visitor))
	if err != nil {
		config.ErrorStatus("failed to load documents", http.StatusInternalServerError, w, err)
		return
	}

	var doc *models.GeneratedDocument
	for i := range docs {
		if docs[i].ID == id {
			doc = &docs[i]
			break
		}
	}
	if doc == nil {
		config.ErrorStatus("document not found", http.StatusNotFound, w, nil)
		return
	}

	title := doc.Title
	if tpl, ok := d.Catalog.Template(doc.Type); ok {
		title = tpl.Title
	}
	generated, err := time.Parse(time.RFC3339Nano, doc.CreatedAt)
	if err != nil {
		zap.S().Warnw("document has no valid creation time", "document", doc.ID, "error", err)
		generated = time.UnixMilli(doc.ID).UTC()
	}

	layout := d.Layout
	if layout.Lines == 0 {
		layout = docgen.DefaultLayout
	}
	body := docgen.Export(title, doc.Content, generated, layout)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docgen.Filename(title)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
