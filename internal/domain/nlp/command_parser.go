// Package nlp interpreta comandos en francés libre ("Crée une facture pour
// Dupont") y los convierte en intenciones estructuradas. Es un clasificador
// heurístico por regex: determinista, sin llamadas externas y fail-closed
// (devuelve nil antes que adivinar).
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

// Acciones reconocidas.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionList   = "list"
	ActionShow   = "show"
)

// Entidades reconocidas.
const (
	EntityInvoice = "invoice"
	EntityClient  = "client"
	EntityProduct = "product"
)

// Intent es el resultado estructurado del análisis de un comando.
// Data y Filters solo se pueblan con los campos realmente capturados.
type Intent struct {
	Action  string
	Entity  string
	ID      string
	Data    map[string]string
	Filters map[string]string
}

// Patrones de creación: verbos con tolerancia a conjugaciones aproximadas.
var createPatterns = []*regexp.Regexp{
	regexp.MustCompile(`cre+[er]+\s+(?:un|une|des)?`),
	regexp.MustCompile(`ajoute?r?\s+(?:un|une|des)?`),
	regexp.MustCompile(`nouv(?:eau|elle)s?\s*`),
	regexp.MustCompile(`faite?s?\s+(?:un|une)?`),
	regexp.MustCompile(`je\s+veux\s+(?:un|une)?`),
	regexp.MustCompile(`je\s+souhaite\s+(?:un|une)?`),
}

var updateKeywords = []string{"modifi", "chang", "met ", "mets ", "a jour", "actualise"}
var deleteKeywords = []string{"supprim", "efface", "enlev", "retire"}
var listKeywords = []string{"liste", "list", "affiche tous", "affiche toutes", "voir tous", "voir toutes", "tous les", "toutes les"}
var showKeywords = []string{"affiche", "montre", "detail", "voir", "info"}

// Anclas de identificador: "numero 12", "n° 12", "id 12"... o número final.
var (
	idAnchoredRe = regexp.MustCompile(`(?:numero|n°|no\.?|id|identifiant)\s*(\d+)`)
	idTrailingRe = regexp.MustCompile(`(\d+)(?:\s*$|\s+[a-z])`)
)

// Campos por entidad. Se aplican sobre el texto plegado para que los acentos
// no importen; los valores capturados conservan lo escrito (sin acentos).
var (
	nameLooseRe   = regexp.MustCompile(`nom\s*(?:est|:)?\s*["']?([^"',]+)["']?`)
	emailRe       = regexp.MustCompile(`([^\s"']+@[^\s"']+\.[^\s"']+)`)
	phoneRe       = regexp.MustCompile(`(?:telephone|tel)\s*(?:est|:)?\s*["']?([0-9\s+\-.]+)["']?`)
	addressRe     = regexp.MustCompile(`adresse\s*(?:est|:)?\s*["']?([^"',]+)["']?`)
	descriptionRe = regexp.MustCompile(`description\s*(?:est|:)?\s*["']?([^"',]+)["']?`)
	priceRe       = regexp.MustCompile(`prix\s*(?:est|:)?\s*["']?(\d+(?:[.,]\d+)?)["']?`)
	taxRe         = regexp.MustCompile(`tva\s*(?:est|:)?\s*["']?(\d+(?:[.,]\d+)?)["']?`)
	clientIDRe    = regexp.MustCompile(`client\s*(?:id|numero)\s*(?:est|:)?\s*["']?(\d+)["']?`)
	clientNameRe  = regexp.MustCompile(`client\s*(?:nom)?\s*(?:est|:)?\s*["']?([^"',\d][^"',]*?)["']?\s*$`)
	statusRe      = regexp.MustCompile(`statut\s*(?:est|:)?\s*["']?([a-z]+)["']?`)
)

// Estados de factura en francés → enum interno.
var statusWords = map[string]string{
	"payee":     entity.InvoiceStatusPaid,
	"envoyee":   entity.InvoiceStatusSent,
	"brouillon": entity.InvoiceStatusDraft,
	"annulee":   entity.InvoiceStatusCancelled,
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza el texto de un comando: minúsculas, sin acentos, sin
// espacios sobrantes. Es la forma canónica sobre la que trabajan los regex.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// Parse analiza un comando y devuelve la intención detectada, o nil si no se
// reconoce acción o entidad. Nunca devuelve error ni entra en pánico: un
// comando incomprensible simplemente no produce intención.
func Parse(text string) *Intent {
	t := Fold(text)
	if t == "" {
		return nil
	}

	action := detectAction(t)
	if action == "" {
		return nil
	}

	ent := detectEntity(t, action)
	if ent == "" {
		return nil
	}

	intent := &Intent{Action: action, Entity: ent}
	intent.ID = extractID(t)

	switch ent {
	case EntityClient:
		intent.Data = extractClientData(t)
	case EntityProduct:
		intent.Data = extractProductData(t)
	case EntityInvoice:
		intent.Data = extractInvoiceData(t)
	}

	if action == ActionList && ent == EntityInvoice {
		for word, status := range statusWords {
			if strings.Contains(t, word) {
				intent.Filters = map[string]string{"status": status}
				break
			}
		}
	}
	return intent
}

// detectAction prueba los grupos en orden fijo; el primero que coincide gana.
// "lister" se evalúa antes que "afficher" porque comparten palabras clave
// ("affiche", "voir") y el plural indica listado.
func detectAction(t string) string {
	for _, re := range createPatterns {
		if re.MatchString(t) {
			return ActionCreate
		}
	}
	for _, kw := range updateKeywords {
		if strings.Contains(t, kw) {
			return ActionUpdate
		}
	}
	for _, kw := range deleteKeywords {
		if strings.Contains(t, kw) {
			return ActionDelete
		}
	}
	for _, kw := range listKeywords {
		if strings.Contains(t, kw) {
			return ActionList
		}
	}
	for _, kw := range showKeywords {
		if strings.Contains(t, kw) {
			return ActionShow
		}
	}
	return ""
}

func detectEntity(t, action string) string {
	switch {
	case strings.Contains(t, "facture"):
		return EntityInvoice
	case strings.Contains(t, "client"):
		return EntityClient
	case strings.Contains(t, "produit"):
		return EntityProduct
	}
	// Inferencia secundaria, solo para creación: sinónimos habituales.
	if action == ActionCreate {
		switch {
		case strings.Contains(t, "article") || strings.Contains(t, "service"):
			return EntityProduct
		case strings.Contains(t, "entreprise") || strings.Contains(t, "societe") || strings.Contains(t, "personne"):
			return EntityClient
		case strings.Contains(t, "devis") || strings.Contains(t, "document"):
			return EntityInvoice
		}
	}
	return ""
}

func extractID(t string) string {
	if m := idAnchoredRe.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	if m := idTrailingRe.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	return ""
}

func extractClientData(t string) map[string]string {
	data := map[string]string{}
	if m := nameLooseRe.FindStringSubmatch(t); m != nil {
		data["name"] = strings.TrimSpace(m[1])
	}
	if m := emailRe.FindStringSubmatch(t); m != nil {
		data["email"] = strings.TrimSpace(m[1])
	}
	if m := phoneRe.FindStringSubmatch(t); m != nil {
		data["phone"] = strings.TrimSpace(m[1])
	}
	if m := addressRe.FindStringSubmatch(t); m != nil {
		data["address"] = strings.TrimSpace(m[1])
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func extractProductData(t string) map[string]string {
	data := map[string]string{}
	if m := nameLooseRe.FindStringSubmatch(t); m != nil {
		data["name"] = strings.TrimSpace(m[1])
	}
	if m := descriptionRe.FindStringSubmatch(t); m != nil {
		data["description"] = strings.TrimSpace(m[1])
	}
	if m := priceRe.FindStringSubmatch(t); m != nil {
		data["price"] = strings.ReplaceAll(m[1], ",", ".")
	}
	if m := taxRe.FindStringSubmatch(t); m != nil {
		data["taxRate"] = strings.ReplaceAll(m[1], ",", ".")
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func extractInvoiceData(t string) map[string]string {
	data := map[string]string{}
	if m := clientIDRe.FindStringSubmatch(t); m != nil {
		data["clientId"] = strings.TrimSpace(m[1])
	} else if m := clientNameRe.FindStringSubmatch(t); m != nil {
		data["clientName"] = strings.TrimSpace(m[1])
	}
	if m := statusRe.FindStringSubmatch(t); m != nil {
		if status, ok := statusWords[strings.TrimSpace(m[1])]; ok {
			data["status"] = status
		}
	}
	if len(data) == 0 {
		return nil
	}
	return data
}
