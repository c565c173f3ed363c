package models

// Organization holds the structure for a legal aid organisation listed in the
// directory. Organisations are compiled into the catalog and never change at
// runtime; the name is the key used by contact counts and the revealed set.
type Organization struct {
	Name     string `json:"name" yaml:"name"`
	City     string `json:"city" yaml:"city"`
	Address  string `json:"address" yaml:"address"`
	Phone    string `json:"phone" yaml:"phone"`
	Services string `json:"services" yaml:"services"`
}

// OrganizationListing is the view of an organisation returned to a visitor.
// Address and phone stay empty until the visitor has revealed the organisation.
type OrganizationListing struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Services     string `json:"services"`
	Revealed     bool   `json:"revealed"`
	ContactCount int    `json:"contactCount"`
}
