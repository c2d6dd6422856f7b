package dto

// AccessCheckResponse resultado de GET /api/access/check.
type AccessCheckResponse struct {
	Role     string `json:"role"`
	Category string `json:"category"`
	Feature  string `json:"feature,omitempty"`
	Allowed  bool   `json:"allowed"`
}

// PolicyEntryResponse entrada serializada: kind = allow | deny | features.
type PolicyEntryResponse struct {
	Kind     string   `json:"kind"`
	Features []string `json:"features,omitempty"`
}

// PolicyResponse entradas del rol de la sesión.
type PolicyResponse struct {
	Role    string                         `json:"role"`
	Entries map[string]PolicyEntryResponse `json:"entries"`
}

// PageResponseBody descriptor de página devuelto cuando el guard permite el render.
type PageResponseBody struct {
	Outcome         string   `json:"outcome"`
	Path            string   `json:"path"`
	Title           string   `json:"title"`
	Section         string   `json:"section,omitempty"`
	Category        string   `json:"category,omitempty"`
	Feature         string   `json:"feature,omitempty"`
	AllowedFeatures []string `json:"allowed_features"`
}

// PageLoadingBody respuesta 202 mientras la sesión se resuelve.
type PageLoadingBody struct {
	Status string `json:"status"`
}
