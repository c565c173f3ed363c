// Package directory filters the legal aid directory and builds the per-visitor
// listing view.
package directory

import (
	"strings"

	"github.com/legalbridge/legalbridge-api/models"
)

// Filter returns the organisations whose name, city or services contain the
// query, ignoring case. A blank query returns orgs unchanged.
func Filter(orgs []models.Organization, query string) []models.Organization {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orgs
	}

	matched := []models.Organization{}
	for _, o := range orgs {
		if strings.Contains(strings.ToLower(o.Name), q) ||
			strings.Contains(strings.ToLower(o.City), q) ||
			strings.Contains(strings.ToLower(o.Services), q) {
			matched = append(matched, o)
		}
	}
	return matched
}

// Listing builds the rows shown to a visitor. Address and phone are only
// included for organisations the visitor has revealed.
func Listing(orgs []models.Organization, revealed models.RevealedSet, counts models.ContactCounts) []models.OrganizationListing {
	rows := make([]models.OrganizationListing, 0, len(orgs))
	for _, o := range orgs {
		row := models.OrganizationListing{
			Name:         o.Name,
			City:         o.City,
			Services:     o.Services,
			Revealed:     revealed[o.Name],
			ContactCount: counts[o.Name],
		}
		if row.Revealed {
			row.Address = o.Address
			row.Phone = o.Phone
		}
		rows = append(rows, row)
	}
	return rows
}
