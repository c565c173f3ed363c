package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/databases"
	"github.com/legalbridge/legalbridge-api/models"
)

// Blog handles blog requests
type Blog struct {
	DB databases.BlogDatabase
}

// BlogsHandler returns all blogs, newest first
func (b Blog) BlogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := b.DB.Find(ctx)
	if err != nil {
		zap.S().Errorw("failed to get blogs", "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "Database error"})
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Blog{}
	}

	resp, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

// BlogByIDHandler returns a blog by ID
func (b Blog) BlogByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		api.WriteJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Not found"})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	blog, err := b.DB.FindOne(ctx, uint(id))
	if errors.Is(err, databases.ErrBlogNotFound) {
		api.WriteJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Not found"})
		return
	}
	if err != nil {
		zap.S().Errorw("failed to get blog", "id", id, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "Database error"})
		return
	}

	api.WriteJSON(w, http.StatusOK, blog)
}

// CreateBlogHandler creates a blog
func (b Blog) CreateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var blog models.Blog
	if err := json.NewDecoder(r.Body).Decode(&blog); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Missing fields"})
		return
	}
	blog.ID = 0
	for _, v := range []string{blog.Title, blog.Author, blog.Date, blog.Summary, blog.Content} {
		if strings.TrimSpace(v) == "" {
			api.WriteJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Missing fields"})
			return
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := b.DB.InsertOne(ctx, blog)
	if err != nil {
		zap.S().Errorw("failed to insert blog", "title", blog.Title, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "Database error"})
		return
	}

	api.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Blog created", ID: id})
}
