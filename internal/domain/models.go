package domain

// Repository is a public GitHub repository as shown on the result card.
// Description and Language are empty when GitHub reports none.
type Repository struct {
	ID           int64
	Name         string
	FullName     string
	OwnerLogin   string
	Description  string
	Language     string
	URL          string
	StarCount    int
	ForkCount    int
	WatcherCount int
}

func (r Repository) HasDescription() bool {
	return r.Description != ""
}

func (r Repository) HasLanguage() bool {
	return r.Language != ""
}
