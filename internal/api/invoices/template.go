package invoices

import (
	"bytes"
	"html/template"
	"time"

	"sheet2bill/internal/domain/invoices"
	"sheet2bill/internal/domain/users"
)

// Branding fields only render for paying users; free invoices carry the
// platform footer.
type invoiceView struct {
	Number     string
	IssueDate  string
	DueDate    string
	Currency   string
	Total      float64
	Freelancer string
	LogoURL    string
	Footer     string
	Client     struct {
		Name    string
		Company string
		Address string
		TaxID   string
	}
	Lines []invoiceLineView
}

type invoiceLineView struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Amount      float64
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 48px; color: #1a1a1a; }
  h1 { font-size: 22px; letter-spacing: 1px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 8px 6px; border-bottom: 1px solid #ddd; }
  th { font-size: 12px; text-transform: uppercase; color: #666; }
  td.num, th.num { text-align: right; }
  .total { font-size: 18px; font-weight: bold; text-align: right; margin-top: 16px; }
  .meta { color: #666; font-size: 13px; }
  .footer { margin-top: 48px; font-size: 12px; color: #999; }
  img.logo { max-height: 64px; }
</style>
</head>
<body>
  {{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="">{{end}}
  <h1>INVOICE {{.Number}}</h1>
  <p class="meta">Issued {{.IssueDate}} · Due {{.DueDate}}</p>

  <p><strong>From:</strong> {{.Freelancer}}<br>
  <strong>To:</strong> {{.Client.Name}}{{if .Client.Company}} ({{.Client.Company}}){{end}}<br>
  {{if .Client.Address}}{{.Client.Address}}<br>{{end}}
  {{if .Client.TaxID}}Tax ID: {{.Client.TaxID}}{{end}}</p>

  <table>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Description}}</td>
      <td class="num">{{printf "%.2f" .Quantity}}</td>
      <td class="num">{{printf "%.2f" .UnitPrice}} {{$.Currency}}</td>
      <td class="num">{{printf "%.2f" .Amount}} {{$.Currency}}</td>
    </tr>
    {{end}}
  </table>

  <p class="total">Total: {{printf "%.2f" .Total}} {{.Currency}}</p>

  <p class="footer">{{.Footer}}</p>
</body>
</html>`))

func buildInvoiceHTML(inv invoices.Invoice) ([]byte, error) {
	view := invoiceView{
		Number:     inv.Number,
		IssueDate:  inv.IssueDate.Format("2006-01-02"),
		DueDate:    inv.DueDate.Format("2006-01-02"),
		Currency:   inv.Currency,
		Total:      inv.Total,
		Freelancer: inv.User.Name + " " + inv.User.Lastname,
		Footer:     "Created with Sheet2Bill",
	}
	view.Client.Name = inv.Client.Name
	view.Client.Company = inv.Client.Company
	view.Client.Address = inv.Client.Address
	view.Client.TaxID = inv.Client.TaxID

	proActive := inv.User.SubscriptionStatus != users.StatusFree &&
		inv.User.SubscriptionEndsAt != nil &&
		inv.User.SubscriptionEndsAt.After(time.Now())
	if proActive {
		if inv.User.LogoURL != nil {
			view.LogoURL = *inv.User.LogoURL
		}
		if inv.User.InvoiceFooter != nil {
			view.Footer = *inv.User.InvoiceFooter
		} else {
			view.Footer = ""
		}
	}

	for _, l := range inv.Lines {
		view.Lines = append(view.Lines, invoiceLineView{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Quantity * l.UnitPrice,
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
