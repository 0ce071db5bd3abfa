package dto

// PageResponse refleja la paginación aplicada en los listados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeleteResult resultado estructurado de un borrado con guardas.
// Success=false con Message explica por qué el recurso no puede borrarse
// (referencias existentes); no es un error técnico.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
