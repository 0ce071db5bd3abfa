package dto

// CommandRequest body para POST /api/assistant/command.
type CommandRequest struct {
	Text string `json:"text"`
}

// CommandResponse resultado de interpretar y ejecutar un comando.
// Understood=false cuando el texto no produjo intención; Answer siempre trae
// un mensaje legible para el usuario (en francés). Para acciones mutantes la
// intención se devuelve sin ejecutar, a confirmar por el cliente.
type CommandResponse struct {
	Understood bool              `json:"understood"`
	Action     string            `json:"action,omitempty"`
	Entity     string            `json:"entity,omitempty"`
	ID         string            `json:"id,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
	Answer     string            `json:"answer"`
}
