// Package domain contains webring entities without logic, just meta-data
package domain

// Member is one site participating in the ring.
type Member struct {
	ID        string `json:"id" yaml:"id" mapstructure:"id"`
	Name      string `json:"name" yaml:"name" mapstructure:"name"`
	URL       string `json:"url" yaml:"url" mapstructure:"url"`
	ButtonURL string `json:"buttonUrl" yaml:"buttonUrl" mapstructure:"buttonUrl"`
}

// MemberResponse is the single-member lookup view.
type MemberResponse struct {
	Current Member `json:"current"`
	Prev    Member `json:"prev"`
	Next    Member `json:"next"`
}

// EmbedResponse is what the widget renders.
type EmbedResponse struct {
	Current Member   `json:"current"`
	Prev    Member   `json:"prev"`
	Next    Member   `json:"next"`
	Members []Member `json:"members"`
}
