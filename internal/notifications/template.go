package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/maryrl/loja-fullstack/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var orderConfirmationTmpl = template.Must(
	template.New("order_confirmation.html").
		Funcs(template.FuncMap{"brl": formatBRL}).
		ParseFS(templateFS, "templates/order_confirmation.html"),
)

type OrderConfirmation struct {
	StoreName    string
	CustomerName string
	OrderID      string
	Items        []models.OrderItem
	Total        float64
}

// RenderOrderConfirmation returns the subject and HTML body of the
// confirmation email.
func RenderOrderConfirmation(data OrderConfirmation) (string, string, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render order confirmation: %w", err)
	}
	return "Confirmação de Pedido #" + data.OrderID, buf.String(), nil
}

func formatBRL(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
