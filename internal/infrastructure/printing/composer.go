package printing

import (
	"strings"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is the fully resolved print model of a quote. All money and
// measure fields are preformatted strings so templates stay dumb.
type Document struct {
	Title        string
	Number       string
	Date         string
	Company      CompanyBlock
	Customer     CustomerBlock
	Sections     []ItemSection
	Totals       TotalsBox
	Installments *InstallmentSection
	Notes        []string
	Bank         *BankBlock
	Signature    SignatureBlock
}

// CompanyBlock is the letterhead
type CompanyBlock struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxCode string
	LogoURL string
}

// CustomerBlock identifies the quote recipient
type CustomerBlock struct {
	Name    string
	Address string
	Phone   string
}

// ItemSection is one category group on the document. Numeral is empty
// for the trailing uncategorized group.
type ItemSection struct {
	Numeral string
	Title   string
	Items   []ItemRow
	Total   string
	HasRows bool
}

// ItemRow is one printed line item
type ItemRow struct {
	Index         int
	Name          string
	Spec          string
	Dimensions    string
	Unit          string
	Measure       string
	Quantity      string
	Price         string
	OriginalPrice string // set only when discounted, shown struck through
	DiscountBadge string // e.g. "(-10%)"
	ImageURL      string
	Notes         string
	Total         string
}

// TotalsBox is the money summary under the item table
type TotalsBox struct {
	SubTotal       string
	DiscountLabel  string
	DiscountAmount string
	ShowDiscount   bool
	TaxLabel       string
	TaxAmount      string
	ShowTax        bool
	GrandTotal     string
}

// InstallmentRow is one printed payment tranche
type InstallmentRow struct {
	Index  int
	Name   string
	Detail string // e.g. "50%" for percent tranches
	Amount string
}

// InstallmentSection is the printed payment schedule
type InstallmentSection struct {
	Rows       []InstallmentRow
	TotalAsked string
	Remaining  string
}

// BankBlock is the payment details footer
type BankBlock struct {
	BankName      string
	AccountName   string
	AccountNumber string
}

// SignatureBlock closes the document
type SignatureBlock struct {
	Place   string // "Phan Rang, ngày 15 tháng 01 năm 2026"
	Role    string
	Creator string
}

// Composer builds print documents from quotes
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

// Compose resolves a quote against the owner's company profile and
// category list into a Document. Items are grouped by category in
// category sort order with the uncategorized group last; numbering is
// continuous across groups.
func (c *Composer) Compose(q *quote.Quote, profile *settings.CompanyProfile, categories []catalog.MainCategory, creatorName string) *Document {
	doc := &Document{
		Title:  "BÁO GIÁ",
		Number: q.Number,
		Date:   FormatDate(q.QuoteDate),
		Customer: CustomerBlock{
			Name:    q.CustomerName,
			Address: q.CustomerAddress,
			Phone:   q.CustomerPhone,
		},
		Signature: SignatureBlock{
			Place:   signaturePlace("", q),
			Role:    "Người lập báo giá",
			Creator: creatorName,
		},
	}

	if profile != nil {
		doc.Company = CompanyBlock{
			Name:    profile.Name,
			Address: profile.Address,
			Phone:   profile.Phone,
			Email:   profile.Email,
			TaxCode: profile.TaxCode,
			LogoURL: profile.LogoURL,
		}
		doc.Signature.Place = signaturePlace(profile.QuoteCity, q)
		if profile.HasBankInfo() {
			doc.Bank = &BankBlock{
				BankName:      profile.BankName,
				AccountName:   profile.BankAccountName,
				AccountNumber: profile.BankAccountNumber,
			}
		}
	}

	doc.Sections = c.composeSections(q, categories)
	doc.Totals = c.composeTotals(q)
	doc.Installments = c.composeInstallments(q)

	if notes := strings.TrimSpace(q.Notes); notes != "" {
		for _, line := range strings.Split(notes, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				doc.Notes = append(doc.Notes, line)
			}
		}
	}

	return doc
}

func (c *Composer) composeSections(q *quote.Quote, categories []catalog.MainCategory) []ItemSection {
	known := make(map[uuid.UUID]struct{}, len(categories))
	for idx := range categories {
		known[categories[idx].ID] = struct{}{}
	}

	// One pass over the items: group into known categories, and keep
	// everything else (nil or dangling category reference) in item
	// order for the trailing group.
	byCategory := make(map[uuid.UUID][]*quote.LineItem)
	var uncategorized []*quote.LineItem
	for idx := range q.Items {
		item := &q.Items[idx]
		if item.MainCategoryID != nil {
			if _, ok := known[*item.MainCategoryID]; ok {
				byCategory[*item.MainCategoryID] = append(byCategory[*item.MainCategoryID], item)
				continue
			}
		}
		uncategorized = append(uncategorized, item)
	}

	sections := make([]ItemSection, 0, len(categories)+1)
	index := 0
	numeral := 0
	for idx := range categories {
		cat := &categories[idx]
		items, ok := byCategory[cat.ID]
		if !ok {
			continue
		}
		numeral++
		section := ItemSection{
			Numeral: RomanNumeral(numeral),
			Title:   strings.ToUpper(cat.Name),
			HasRows: true,
		}
		total := decimal.Zero
		for _, item := range items {
			index++
			section.Items = append(section.Items, c.composeRow(index, item))
			total = total.Add(item.LineTotal())
		}
		section.Total = FormatMoney(total)
		sections = append(sections, section)
	}

	// Uncategorized items are appended as bare rows with no header or
	// subtotal; numbering continues across the boundary.
	if len(uncategorized) > 0 {
		section := ItemSection{HasRows: true}
		for _, item := range uncategorized {
			index++
			section.Items = append(section.Items, c.composeRow(index, item))
		}
		sections = append(sections, section)
	}

	return sections
}

func (c *Composer) composeRow(index int, item *quote.LineItem) ItemRow {
	row := ItemRow{
		Index:      index,
		Name:       item.Name,
		Spec:       item.Spec,
		Dimensions: formatDimensions(item),
		Unit:       item.Unit,
		Measure:    FormatMeasure(item.DisplayMeasure()),
		Quantity:   FormatMeasure(item.Quantity),
		Price:      FormatMoney(item.EffectivePrice()),
		ImageURL:   item.ImageURL,
		Notes:      item.Notes,
		Total:      FormatMoney(item.LineTotal()),
	}
	if item.HasDiscount() {
		row.OriginalPrice = FormatMoney(item.Price)
		if item.DiscountType == quote.DiscountTypePercent {
			row.DiscountBadge = "(-" + FormatMeasure(item.DiscountValue) + "%)"
		} else {
			row.DiscountBadge = "(-" + FormatMoney(item.DiscountValue) + ")"
		}
	}
	return row
}

// formatDimensions renders the entered millimetre dimensions, e.g.
// "D 2000mm x C 500mm x S 300mm". Only dimensions the calc type uses
// are shown.
func formatDimensions(item *quote.LineItem) string {
	var parts []string
	if item.CalcType.RequiresLength() && item.LengthMM.GreaterThan(decimal.Zero) {
		parts = append(parts, "D "+FormatMeasure(item.LengthMM)+"mm")
	}
	if item.CalcType.RequiresHeight() && item.HeightMM.GreaterThan(decimal.Zero) {
		parts = append(parts, "C "+FormatMeasure(item.HeightMM)+"mm")
	}
	if item.CalcType.RequiresDepth() && item.DepthMM.GreaterThan(decimal.Zero) {
		parts = append(parts, "S "+FormatMeasure(item.DepthMM)+"mm")
	}
	return strings.Join(parts, " x ")
}

func (c *Composer) composeTotals(q *quote.Quote) TotalsBox {
	totals := q.CalculateTotals()
	box := TotalsBox{
		SubTotal:   FormatMoneyVND(totals.SubTotal),
		GrandTotal: FormatMoneyVND(totals.GrandTotal),
	}
	if totals.DiscountAmount.GreaterThan(decimal.Zero) {
		box.ShowDiscount = true
		box.DiscountAmount = FormatMoneyVND(totals.DiscountAmount)
		if q.OrderDiscountType == quote.DiscountTypePercent {
			box.DiscountLabel = "Giảm giá (" + FormatMeasure(q.OrderDiscount) + "%)"
		} else {
			box.DiscountLabel = "Giảm giá"
		}
	}
	if totals.TaxAmount.GreaterThan(decimal.Zero) {
		box.ShowTax = true
		box.TaxLabel = "Thuế VAT (" + FormatMeasure(q.TaxPercent) + "%)"
		box.TaxAmount = FormatMoneyVND(totals.TaxAmount)
	}
	return box
}

func (c *Composer) composeInstallments(q *quote.Quote) *InstallmentSection {
	if len(q.Installments) == 0 {
		return nil
	}
	plan := q.PaymentPlan()
	section := &InstallmentSection{
		Rows:       make([]InstallmentRow, 0, len(plan.Lines)),
		TotalAsked: FormatMoneyVND(plan.TotalAsked),
		Remaining:  FormatMoneyVND(plan.Remaining),
	}
	for idx, line := range plan.Lines {
		row := InstallmentRow{
			Index:  idx + 1,
			Name:   line.Name,
			Amount: FormatMoneyVND(line.Amount),
		}
		if line.Type == quote.DiscountTypePercent {
			row.Detail = FormatMeasure(line.Value) + "%"
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}

// signaturePlace renders "Phan Rang, ngày 15 tháng 01 năm 2026"
func signaturePlace(city string, q *quote.Quote) string {
	if city == "" {
		city = "Phan Rang"
	}
	d := q.QuoteDate
	return city + ", ngày " + d.Format("02") + " tháng " + d.Format("01") + " năm " + d.Format("2006")
}
