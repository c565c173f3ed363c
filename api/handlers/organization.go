package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/directory"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

// Organization handles legal aid directory requests
type Organization struct {
	Orgs        []models.Organization
	Collections *store.Collections
}

// OrganizationsHandler returns the organisations matching ?q= with the
// visitor's reveal state and contact counts
func (o Organization) OrganizationsHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	scope := store.Scope(visitor)
	var (
		revealed models.RevealedSet
		counts   models.ContactCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revealed, err = o.Collections.Revealed.Load(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		counts, err = o.Collections.ContactCounts.Load(gctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		config.ErrorStatus("failed to load visitor state", http.StatusInternalServerError, w, err)
		return
	}

	matches := directory.Filter(o.Orgs, r.URL.Query().Get("q"))
	api.WriteJSON(w, http.StatusOK, directory.Listing(matches, revealed, counts))
}
