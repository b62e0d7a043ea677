package types

// AppSettings holds application-wide preferences stored by the backend.
type AppSettings struct {
	Language string `json:"language,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// AppSettingsResponse is the body of GET|POST /api/app-settings endpoints.
type AppSettingsResponse struct {
	Envelope
	Language string       `json:"language,omitempty"`
	Settings *AppSettings `json:"settings,omitempty"`
}

// LanguageRequest is the body for POST /api/app-settings/language.
type LanguageRequest struct {
	Language string `json:"language"`
}
