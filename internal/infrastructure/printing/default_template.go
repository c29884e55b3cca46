package printing

// defaultQuoteTemplate is the built-in A4 layout used when the owner has
// no custom print template. It renders a *Document.
const defaultQuoteTemplate = `<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  @page { size: A4; margin: 10mm; }
  * { box-sizing: border-box; }
  body {
    font-family: "Times New Roman", serif;
    font-size: 13px;
    color: #1a1a1a;
    margin: 0;
  }
  .letterhead { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
  .letterhead .company { max-width: 70%; }
  .letterhead .company h2 { margin: 0 0 4px; font-size: 16px; text-transform: uppercase; }
  .letterhead .company p { margin: 1px 0; }
  .letterhead img.logo { max-height: 70px; max-width: 160px; }
  h1.doc-title { text-align: center; font-size: 22px; letter-spacing: 2px; margin: 14px 0 2px; }
  .doc-meta { text-align: center; margin-bottom: 12px; }
  .customer p { margin: 2px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 10px; }
  table.items th, table.items td { border: 1px solid #444; padding: 4px 6px; vertical-align: top; }
  table.items th { background: #f0f0f0; text-align: center; }
  table.items td.num { text-align: center; white-space: nowrap; }
  table.items td.money { text-align: right; white-space: nowrap; }
  tr.section-header td { background: #e8e8e8; font-weight: bold; }
  tr.section-total td { font-weight: bold; background: #fafafa; }
  .dims { color: #555; font-size: 12px; }
  .spec { color: #555; font-size: 12px; white-space: pre-line; }
  .strike { text-decoration: line-through; color: #888; }
  .badge { color: #c0392b; font-size: 11px; }
  img.item-photo { max-width: 90px; max-height: 70px; display: block; margin-top: 3px; }
  table.totals { margin-left: auto; margin-top: 10px; border-collapse: collapse; min-width: 45%; }
  table.totals td { padding: 3px 8px; }
  table.totals td.label { text-align: left; }
  table.totals td.value { text-align: right; white-space: nowrap; }
  table.totals tr.grand td { font-weight: bold; font-size: 15px; border-top: 1px solid #444; }
  .installments { margin-top: 14px; }
  .installments h3, .notes h3, .bank h3 { font-size: 14px; margin: 10px 0 4px; }
  table.plan { width: 100%; border-collapse: collapse; }
  table.plan th, table.plan td { border: 1px solid #444; padding: 4px 6px; }
  table.plan td.money { text-align: right; white-space: nowrap; }
  table.plan tr.sum td { font-weight: bold; }
  .notes ul { margin: 4px 0; padding-left: 18px; }
  .bank p { margin: 2px 0; }
  .signature { margin-top: 28px; display: flex; justify-content: flex-end; }
  .signature .block { text-align: center; min-width: 220px; }
  .signature .place { font-style: italic; }
  .signature .role { font-weight: bold; margin: 4px 0 60px; }
</style>
</head>
<body>

{{if .Company.Name}}
<div class="letterhead">
  <div class="company">
    <h2>{{.Company.Name}}</h2>
    {{if .Company.Address}}<p>Địa chỉ: {{.Company.Address}}</p>{{end}}
    {{if .Company.Phone}}<p>Điện thoại: {{.Company.Phone}}</p>{{end}}
    {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
    {{if .Company.TaxCode}}<p>MST: {{.Company.TaxCode}}</p>{{end}}
  </div>
  {{if .Company.LogoURL}}<img class="logo" src="{{.Company.LogoURL}}" alt="">{{end}}
</div>
{{end}}

<h1 class="doc-title">{{.Title}}</h1>
<div class="doc-meta">Số: {{.Number}} — Ngày: {{.Date}}</div>

<div class="customer">
  <p><strong>Khách hàng:</strong> {{.Customer.Name}}</p>
  {{if .Customer.Address}}<p><strong>Địa chỉ:</strong> {{.Customer.Address}}</p>{{end}}
  {{if .Customer.Phone}}<p><strong>Điện thoại:</strong> {{.Customer.Phone}}</p>{{end}}
</div>

<table class="items">
  <thead>
    <tr>
      <th style="width:4%">STT</th>
      <th style="width:26%">Hạng mục</th>
      <th style="width:18%">Quy cách</th>
      <th style="width:7%">ĐVT</th>
      <th style="width:9%">Khối lượng</th>
      <th style="width:7%">SL</th>
      <th style="width:13%">Đơn giá</th>
      <th style="width:16%">Thành tiền</th>
    </tr>
  </thead>
  <tbody>
    {{range .Sections}}
    {{if .Title}}
    <tr class="section-header">
      <td class="num">{{.Numeral}}</td>
      <td colspan="7">{{.Title}}</td>
    </tr>
    {{end}}
    {{range .Items}}
    <tr>
      <td class="num">{{.Index}}</td>
      <td>
        <strong>{{.Name}}</strong>
        {{if .Dimensions}}<div class="dims">{{.Dimensions}}</div>{{end}}
        {{if .ImageURL}}<img class="item-photo" src="{{.ImageURL}}" alt="">{{end}}
        {{if .Notes}}<div class="spec">{{.Notes}}</div>{{end}}
      </td>
      <td>{{if .Spec}}<div class="spec">{{.Spec}}</div>{{end}}</td>
      <td class="num">{{.Unit}}</td>
      <td class="num">{{.Measure}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="money">
        {{if .OriginalPrice}}<div class="strike">{{.OriginalPrice}}</div>{{end}}
        {{.Price}}
        {{if .DiscountBadge}}<div class="badge">{{.DiscountBadge}}</div>{{end}}
      </td>
      <td class="money">{{.Total}}</td>
    </tr>
    {{end}}
    {{if .Title}}
    <tr class="section-total">
      <td colspan="7">Cộng {{.Numeral}}</td>
      <td class="money">{{.Total}}</td>
    </tr>
    {{end}}
    {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td class="label">Cộng:</td><td class="value">{{.Totals.SubTotal}}</td></tr>
  {{if .Totals.ShowDiscount}}<tr><td class="label">{{.Totals.DiscountLabel}}:</td><td class="value">-{{.Totals.DiscountAmount}}</td></tr>{{end}}
  {{if .Totals.ShowTax}}<tr><td class="label">{{.Totals.TaxLabel}}:</td><td class="value">{{.Totals.TaxAmount}}</td></tr>{{end}}
  <tr class="grand"><td class="label">TỔNG CỘNG:</td><td class="value">{{.Totals.GrandTotal}}</td></tr>
</table>

{{if .Installments}}
<div class="installments">
  <h3>Tiến độ thanh toán</h3>
  <table class="plan">
    <thead>
      <tr><th style="width:6%">Đợt</th><th>Nội dung</th><th style="width:12%">Tỷ lệ</th><th style="width:22%">Số tiền</th></tr>
    </thead>
    <tbody>
      {{range .Installments.Rows}}
      <tr>
        <td class="num">{{.Index}}</td>
        <td>{{.Name}}</td>
        <td class="num">{{.Detail}}</td>
        <td class="money">{{.Amount}}</td>
      </tr>
      {{end}}
      <tr class="sum"><td colspan="3">TỔNG CỘNG CÁC ĐỢT</td><td class="money">{{.Installments.TotalAsked}}</td></tr>
      <tr class="sum"><td colspan="3">CÒN LẠI</td><td class="money">{{.Installments.Remaining}}</td></tr>
    </tbody>
  </table>
</div>
{{end}}

{{if .Notes}}
<div class="notes">
  <h3>Ghi chú</h3>
  <ul>
    {{range .Notes}}<li>{{.}}</li>{{end}}
  </ul>
</div>
{{end}}

{{if .Bank}}
<div class="bank">
  <h3>Thông tin thanh toán</h3>
  {{if .Bank.BankName}}<p>Ngân hàng: {{.Bank.BankName}}</p>{{end}}
  {{if .Bank.AccountName}}<p>Chủ tài khoản: {{.Bank.AccountName}}</p>{{end}}
  {{if .Bank.AccountNumber}}<p>Số tài khoản: {{.Bank.AccountNumber}}</p>{{end}}
</div>
{{end}}

<div class="signature">
  <div class="block">
    <div class="place">{{.Signature.Place}}</div>
    <div class="role">{{.Signature.Role}}</div>
    {{if .Signature.Creator}}<div>{{.Signature.Creator}}</div>{{end}}
  </div>
</div>

</body>
</html>`
