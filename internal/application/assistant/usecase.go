// Package assistant ejecuta los comandos en lenguaje natural del usuario.
// Las consultas (lister, afficher) se resuelven contra los casos de uso y
// devuelven una respuesta en texto; las acciones mutantes se devuelven como
// intención estructurada para que el cliente las confirme antes de ejecutar.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/facturation-pro/internal/application/billing"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/application/usecase"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/nlp"
)

const fallbackAnswer = "Je n'ai pas compris votre demande. Essayez par exemple : « Liste toutes les factures payées »."

// UseCase interpreta y ejecuta comandos del asistente.
type UseCase struct {
	clients  *usecase.ClientUseCase
	products *usecase.ProductUseCase
	invoices *billing.InvoiceUseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	clients *usecase.ClientUseCase,
	products *usecase.ProductUseCase,
	invoices *billing.InvoiceUseCase,
) *UseCase {
	return &UseCase{clients: clients, products: products, invoices: invoices}
}

// Execute analiza el texto y ejecuta la intención. Nunca retorna error por un
// comando incomprensible: responde con el mensaje de fallback (fail-closed).
func (uc *UseCase) Execute(ctx context.Context, in dto.CommandRequest) (*dto.CommandResponse, error) {
	intent := nlp.Parse(in.Text)
	if intent == nil {
		return &dto.CommandResponse{Understood: false, Answer: fallbackAnswer}, nil
	}

	resp := &dto.CommandResponse{
		Understood: true,
		Action:     intent.Action,
		Entity:     intent.Entity,
		ID:         intent.ID,
		Data:       intent.Data,
		Filters:    intent.Filters,
	}

	switch intent.Action {
	case nlp.ActionList:
		answer, err := uc.answerList(ctx, intent)
		if err != nil {
			return nil, err
		}
		resp.Answer = answer
	case nlp.ActionShow:
		answer, err := uc.answerShow(ctx, intent)
		if err != nil {
			return nil, err
		}
		resp.Answer = answer
	case nlp.ActionCreate, nlp.ActionUpdate, nlp.ActionDelete:
		// Mutación: se devuelve la intención sin ejecutar, a confirmar.
		resp.Answer = confirmationAnswer(intent)
	}
	return resp, nil
}

const assistantPageLimit = 20

func (uc *UseCase) answerList(ctx context.Context, intent *nlp.Intent) (string, error) {
	switch intent.Entity {
	case nlp.EntityInvoice:
		status := intent.Filters["status"]
		list, err := uc.invoices.List(ctx, status, assistantPageLimit, 0)
		if err != nil {
			return "", err
		}
		if len(list.Items) == 0 {
			return "Aucune facture trouvée.", nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d facture(s) trouvée(s) :\n", len(list.Items))
		for _, inv := range list.Items {
			fmt.Fprintf(&b, "- %s — %s — %s € TTC (%s)\n",
				inv.Number, inv.ClientName, inv.GrossTotal.StringFixed(2), inv.Status)
		}
		return b.String(), nil

	case nlp.EntityClient:
		list, err := uc.clients.List(assistantPageLimit, 0)
		if err != nil {
			return "", err
		}
		if len(list) == 0 {
			return "Aucun client trouvé.", nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d client(s) trouvé(s) :\n", len(list))
		for _, c := range list {
			fmt.Fprintf(&b, "- %s", c.Name)
			if c.Email != "" {
				fmt.Fprintf(&b, " <%s>", c.Email)
			}
			b.WriteString("\n")
		}
		return b.String(), nil

	case nlp.EntityProduct:
		list, err := uc.products.List(false, assistantPageLimit, 0)
		if err != nil {
			return "", err
		}
		if len(list.Items) == 0 {
			return "Aucun produit trouvé.", nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d produit(s) trouvé(s) :\n", len(list.Items))
		for _, p := range list.Items {
			fmt.Fprintf(&b, "- %s — %s € HT (TVA %s%%)\n",
				p.Name, p.Price.StringFixed(2), p.TaxRate.String())
		}
		return b.String(), nil
	}
	return fallbackAnswer, nil
}

func (uc *UseCase) answerShow(ctx context.Context, intent *nlp.Intent) (string, error) {
	if intent.ID == "" {
		return "Précisez l'identifiant, par exemple : « Affiche la facture numéro 12 ».", nil
	}
	switch intent.Entity {
	case nlp.EntityInvoice:
		inv, err := uc.findInvoice(ctx, intent.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Sprintf("Aucune facture n°%s trouvée.", intent.ID), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Facture %s — %s — %s € HT / %s € TTC — statut : %s.",
			inv.Number, inv.ClientName, inv.NetTotal.StringFixed(2), inv.GrossTotal.StringFixed(2), inv.Status), nil
	case nlp.EntityClient:
		c, err := uc.clients.GetByID(intent.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Sprintf("Aucun client trouvé avec l'identifiant %s.", intent.ID), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Client %s — %s — %s.", c.Name, c.Email, c.Phone), nil
	case nlp.EntityProduct:
		p, err := uc.products.GetByID(intent.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Sprintf("Aucun produit trouvé avec l'identifiant %s.", intent.ID), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Produit %s — %s € HT — TVA %s%%.", p.Name, p.Price.StringFixed(2), p.TaxRate.String()), nil
	}
	return fallbackAnswer, nil
}

// findInvoice resuelve la referencia del comando: primero como id exacto y,
// para una referencia numérica, por la secuencia del número visible
// (« facture 12 » → FACT-2026-012). Los ids reales son UUID: el usuario casi
// siempre cita el número de la factura.
func (uc *UseCase) findInvoice(ctx context.Context, ref string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return inv, err
	}
	seq, convErr := strconv.Atoi(ref)
	if convErr != nil {
		return nil, err
	}
	return uc.invoices.GetBySequence(ctx, seq)
}

var entityLabels = map[string]string{
	nlp.EntityInvoice: "la facture",
	nlp.EntityClient:  "le client",
	nlp.EntityProduct: "le produit",
}

var actionLabels = map[string]string{
	nlp.ActionCreate: "créer",
	nlp.ActionUpdate: "modifier",
	nlp.ActionDelete: "supprimer",
}

func confirmationAnswer(intent *nlp.Intent) string {
	label := entityLabels[intent.Entity]
	if intent.Action == nlp.ActionCreate {
		// « créer la facture » sonne faux pour une création.
		switch intent.Entity {
		case nlp.EntityInvoice:
			label = "une facture"
		case nlp.EntityClient:
			label = "un client"
		case nlp.EntityProduct:
			label = "un produit"
		}
	}
	answer := fmt.Sprintf("Vous souhaitez %s %s", actionLabels[intent.Action], label)
	if intent.ID != "" {
		answer += fmt.Sprintf(" n°%s", intent.ID)
	}
	return answer + ". Confirmez pour continuer."
}
