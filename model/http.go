package model

type VoiceRequestBody struct {
	Steps  []Step `json:"steps"`
	NUpper int    `json:"n_upper"`
}

type VoiceResponse struct {
	Results []VoicingResult   `json:"results"`
	Report  ProgressionReport `json:"report"`
}

type NamedVoice struct {
	Name  string `json:"name"`
	Notes []Note `json:"notes"`
}

type ValidateRequestBody struct {
	Voices []NamedVoice `json:"voices"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
