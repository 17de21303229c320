// Package pdf renders the printable invoice form with Maroto v2.
//
// A4 portrait, mirroring the shop's paper layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company      │  Invoice number + date              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  JOB COLUMNS: customer / lot per billed takeoff             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Category | amt qty | amt qty | ... (5 columns)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / HST 13% / TOTAL                         │
//	└─────────────────────────────────────────────────────────────┘
//
// Jobs are right-aligned across the five columns; a blank cell means the
// category does not apply to that job, a printed 0.00 never appears.
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/trimworks/takeoff-api/internal/application/billing"
	"github.com/trimworks/takeoff-api/internal/domain/billing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 40, Green: 54, Blue: 85}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// cad formats money with en-CA grouping ("$1,234.56").
var cad = message.NewPrinter(language.MustParse("en-CA"))

// FormRenderer implements billing.InvoicePDFGenerator with Maroto v2.
type FormRenderer struct {
	companyName string
}

var _ appbilling.InvoicePDFGenerator = (*FormRenderer)(nil)

// NewFormRenderer builds the renderer. companyName prints in the header.
func NewFormRenderer(companyName string) *FormRenderer {
	return &FormRenderer{companyName: companyName}
}

// Render generates the PDF and returns its bytes. Takeoffs arrive in job
// position order.
func (g *FormRenderer) Render(inv *entity.Invoice, agg *billing.AggregateResult, takeoffs []*entity.Takeoff) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Invoice "+inv.Number, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(jobColumnsRow(takeoffs))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range agg.Lines {
		m.AddRows(categoryRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(agg))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: company name left, invoice number and date right.
func headerRow(companyName string, inv *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Interior trim installation", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Date: "+inv.GeneratedDate.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// jobColumnsRow: one cell per form column, customer and lot for the takeoff
// billed there. Right-aligned like the table below.
func jobColumnsRow(takeoffs []*entity.Takeoff) core.Row {
	cells := make([]core.Col, 0, billing.FormColumns+1)
	cells = append(cells, col.New(2).Add(
		text.New("JOB", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 2}),
	))
	offset := billing.FormColumns - len(takeoffs)
	for c := 0; c < billing.FormColumns; c++ {
		if c < offset {
			cells = append(cells, col.New(2))
			continue
		}
		t := takeoffs[c-offset]
		sub := t.Lot
		if sub == "" {
			sub = t.SiteAddress
		}
		cells = append(cells, col.New(2).Add(
			text.New(t.CustomerName, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1}),
			text.New(sub, props.Text{Size: 6.5, Align: align.Center, Top: 5, Color: colorGray}),
		))
	}
	return row.New(10).Add(cells...)
}

// tableHeaderRow: category label plus an Amount/Qty pair per job column.
func tableHeaderRow() core.Row {
	cells := make([]core.Col, 0, 1+billing.FormColumns)
	cells = append(cells, col.New(2).Add(text.New("Category", props.Text{
		Style: fontstyle.Bold, Size: 7, Top: 1, Color: colorPrimary,
	})))
	for c := 0; c < billing.FormColumns; c++ {
		cells = append(cells, col.New(2).Add(
			text.New("Amount", props.Text{Style: fontstyle.Bold, Size: 6.5, Align: align.Right, Top: 1, Color: colorPrimary}),
			text.New("Qty", props.Text{Style: fontstyle.Bold, Size: 6.5, Align: align.Right, Top: 4.5, Color: colorGray}),
		))
	}
	return row.New(8).Add(cells...)
}

// categoryRow: one packed form line. Invalid slots print as blanks.
func categoryRow(l billing.PackedLine) core.Row {
	cells := make([]core.Col, 0, 1+billing.FormColumns)
	cells = append(cells, col.New(2).Add(text.New(l.Description, props.Text{
		Size: 7, Top: 1,
	})))
	for c := 0; c < billing.FormColumns; c++ {
		amount, qty := l.Slots[2*c], l.Slots[2*c+1]
		cell := col.New(2)
		if amount.Valid {
			cell.Add(text.New(money(amount.Decimal), props.Text{Size: 7, Align: align.Right, Top: 1}))
		}
		if qty.Valid {
			cell.Add(text.New(qty.Decimal.String(), props.Text{Size: 6.5, Align: align.Right, Top: 4.5, Color: colorGray}))
		}
		cells = append(cells, cell)
	}
	return row.New(8).Add(cells...)
}

// totalsRow: subtotal, HST and total, right-aligned.
func totalsRow(agg *billing.AggregateResult) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			label("HST 13%:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(money(agg.Subtotal)),
			value(money(agg.Tax)),
			text.New(money(agg.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money keeps the decimal exact: the cents come straight from StringFixed,
// only the integer part goes through the printer for grouping.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	dot := strings.IndexByte(s, '.')
	whole, _ := strconv.ParseInt(s[:dot], 10, 64)
	out := cad.Sprintf("$%d.%s", whole, s[dot+1:])
	if neg {
		out = "-" + out
	}
	return out
}
