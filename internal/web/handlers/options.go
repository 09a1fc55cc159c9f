package handlers

import (
	"net/http"

	"github.com/kozaktomas/passport-photo/internal/paper"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

// OptionsHandler serves the choices the UI offers.
type OptionsHandler struct {
	catalog  *passport.Catalog
	provider string
}

// NewOptionsHandler creates an options handler for the active AI provider.
func NewOptionsHandler(catalog *passport.Catalog, provider string) *OptionsHandler {
	return &OptionsHandler{catalog: catalog, provider: provider}
}

type optionDefaults struct {
	Country    string `json:"country"`
	Background string `json:"background"`
	Clothing   string `json:"clothing"`
	Paper      string `json:"paper"`
	Format     string `json:"format"`
}

type optionsResponse struct {
	Countries   []passport.Country    `json:"countries"`
	Backgrounds []passport.Background `json:"backgrounds"`
	Clothing    []passport.Clothing   `json:"clothing"`
	Papers      []paper.Profile       `json:"papers"`
	Formats     []sheet.Format        `json:"formats"`
	Tips        []string              `json:"tips"`
	Defaults    optionDefaults        `json:"defaults"`
	Provider    string                `json:"provider"`
}

// Get returns the option catalog, paper profiles and capture tips.
func (h *OptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, optionsResponse{
		Countries:   h.catalog.Countries,
		Backgrounds: h.catalog.Backgrounds,
		Clothing:    h.catalog.Clothing,
		Papers:      paper.Profiles(),
		Formats:     sheet.Formats(),
		Tips:        h.catalog.Tips,
		Defaults: optionDefaults{
			Country:    passport.DefaultCountry,
			Background: passport.DefaultBackground,
			Clothing:   passport.DefaultClothing,
			Paper:      paper.Default().Name,
			Format:     string(sheet.FormatJPEG),
		},
		Provider: h.provider,
	})
}
