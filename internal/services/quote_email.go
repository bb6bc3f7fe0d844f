package services

import (
	"html/template"
	"strings"

	"listino/internal/models"
)

// quoteEmailTmpl is the body sent for every quote request: logo, greeting,
// contact block, the selected products in selection order and the fixed
// signature. The same body goes to the operator and to the customer.
var quoteEmailTmpl = template.Must(template.New("quote_email").Parse(`<html><body>
<img src="{{.LogoURL}}" width="200"/><br><br>
Gentile {{.CompanyName}},<br>Grazie per averci contattato. Ecco il riepilogo della sua richiesta:<br><br>
<b>Dati Cliente:</b><br>Email: {{.CustomerEmail}}<br>Telefono: {{.CustomerPhone}}<br><br>
<table border="1" cellspacing="0" cellpadding="5">
<tr><th>SKU</th><th>Descrizione</th><th>Marchio</th><th>Prezzo B2B i.c.</th><th>Prezzo Pubblico</th><th>Quantità</th></tr>
{{range .Items}}<tr><td>{{.SKU}}</td><td>{{.Description}}</td><td>{{.Brand}}</td><td>{{.SalePrice}} €</td><td>{{.PublicPrice}} €</td><td>{{.Quantity}}</td></tr>
{{end}}</table><br>
Il nostro staff la contatterà a breve per un'offerta personalizzata.<br><br>
Cordiali saluti,<br><b>Team EL4U</b><br>
info@el4u.it | Wapp: +39 0432 664744</body></html>`))

type quoteEmailData struct {
	LogoURL       template.URL
	CompanyName   string
	CustomerEmail string
	CustomerPhone string
	Items         []models.SelectionEntry
}

func (s *QuoteService) renderBody(req *models.QuoteRequest) (string, error) {
	var b strings.Builder
	data := quoteEmailData{
		LogoURL:       template.URL(s.logoURL),
		CompanyName:   req.CompanyName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         req.Items,
	}
	if err := quoteEmailTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
