package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/models"
)

// htmlRecord holds the display form of one table row. Sort carries the
// raw numeric values used by the client-side sorter.
type htmlRecord struct {
	Symbol         string
	InitialPrice   string
	Shares         string
	CurrentPrice   string
	CurrentValue   string
	Dividends      string
	GainLoss       string
	GainLossPct    string
	TotalReturn    string
	TotalReturnPct string
	Status         string
	GainClass      string
	ReturnClass    string
	Sort           []float64
}

// htmlReportData holds the template data for the full report page.
type htmlReportData struct {
	Title          string
	StartDate      string
	GeneratedAt    string
	Investment     string
	WorkingCount   int
	TotalCount     int
	VerifiedCount  int
	TotalValue     string
	TotalDividends string
	GainLoss       string
	GainLossPct    string
	TotalReturn    string
	TotalReturnPct string
	GainClass      string
	ReturnClass    string
	Records        []htmlRecord
	Failed         []htmlRecord
	Footnotes      []string
	ChartSrc       template.URL
}

func gainClass(v float64) string {
	switch {
	case v > 0:
		return "gain"
	case v < 0:
		return "loss"
	default:
		return "flat"
	}
}

// RenderHTML generates the sortable HTML report for a batch result.
func (s *Service) RenderHTML(result *models.BatchResult) (string, error) {
	t := computeTotals(result.Working, s.config.InvestmentPerSymbol)

	data := htmlReportData{
		Title:          s.config.Report.Title,
		StartDate:      s.config.StartDate,
		GeneratedAt:    result.GeneratedAt.Format("02/01/2006 15:04"),
		Investment:     common.FormatMoney(s.config.InvestmentPerSymbol),
		WorkingCount:   len(result.Working),
		TotalCount:     len(result.Records),
		VerifiedCount:  result.VerifiedCount(),
		TotalValue:     common.FormatMoney(t.CurrentValue),
		TotalDividends: common.FormatMoney(t.Dividends),
		GainLoss:       common.FormatMoney(t.GainLoss),
		GainLossPct:    common.FormatSignedPct(t.GainLossPct),
		TotalReturn:    common.FormatMoney(t.TotalReturn),
		TotalReturnPct: common.FormatSignedPct(t.TotalReturnPct),
		GainClass:      gainClass(t.GainLoss),
		ReturnClass:    gainClass(t.TotalReturn),
	}

	if startDate, err := s.config.GetStartDate(); err == nil {
		data.StartDate = common.FormatDateDMY(startDate)
	}

	for _, rec := range result.Working {
		data.Records = append(data.Records, htmlRecord{
			Symbol:         rec.DisplaySymbol,
			InitialPrice:   fmt.Sprintf("%.2f", rec.InitialPrice),
			Shares:         fmt.Sprintf("%.2f", rec.SharesPurchased),
			CurrentPrice:   fmt.Sprintf("%.2f", rec.CurrentPrice),
			CurrentValue:   fmt.Sprintf("%.2f", rec.CurrentValue),
			Dividends:      fmt.Sprintf("%.2f", rec.DividendsCollected),
			GainLoss:       fmt.Sprintf("%.2f", rec.GainLoss),
			GainLossPct:    fmt.Sprintf("%.1f", rec.GainLossPct),
			TotalReturn:    fmt.Sprintf("%.2f", rec.TotalReturn),
			TotalReturnPct: fmt.Sprintf("%.1f", rec.TotalReturnPct),
			Status:         string(rec.Status),
			GainClass:      gainClass(rec.GainLoss),
			ReturnClass:    gainClass(rec.TotalReturn),
			Sort: []float64{
				rec.InitialPrice, rec.SharesPurchased, rec.CurrentPrice,
				rec.CurrentValue, rec.DividendsCollected, rec.GainLoss,
				rec.GainLossPct, rec.TotalReturn, rec.TotalReturnPct,
			},
		})

		if rec.IsFallbackDate {
			data.Footnotes = append(data.Footnotes,
				fmt.Sprintf("**%s: Started trading on %s", rec.Symbol, common.FormatDateDMY(rec.ActualStartDate)))
		}
	}

	for _, rec := range result.Failed {
		data.Failed = append(data.Failed, htmlRecord{
			Symbol: rec.Symbol,
			Status: string(rec.Status),
		})
	}

	if png, err := renderValueChart(result.Working); err == nil {
		data.ChartSrc = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	} else {
		s.logger.Debug().Err(err).Msg("Skipping report chart")
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;margin:40px;background-color:#f5f5f5}
.container{background-color:#fff;padding:30px;border-radius:10px;box-shadow:0 4px 6px rgba(0,0,0,.1);max-width:1400px;margin:0 auto;overflow-x:auto}
h1{color:#2c3e50;text-align:center;border-bottom:3px solid #3498db;padding-bottom:20px;margin-bottom:30px}
h2{color:#2c3e50;margin-top:30px}
.info{background-color:#ecf0f1;padding:15px;border-radius:5px;margin-bottom:25px;text-align:center;color:#34495e}
.summary{display:flex;flex-wrap:wrap;gap:12px;justify-content:center;margin-bottom:25px}
.summary .card{background:#f8f9fa;border:1px solid #e1e4e8;border-radius:8px;padding:12px 18px;text-align:center;min-width:150px}
.summary .card .label{font-size:12px;color:#6c757d}
.summary .card .value{font-size:18px;font-weight:bold;color:#2c3e50}
table{width:100%;border-collapse:collapse;margin-top:20px;font-size:13px;min-width:1200px}
th{background-color:#3498db;color:#fff;padding:10px 8px;text-align:center;font-weight:bold;cursor:pointer;font-size:12px;user-select:none;position:relative}
th:hover{background-color:#2980b9}
th.sort-asc::after{content:' \2191'}
th.sort-desc::after{content:' \2193'}
td{padding:8px 6px;border-bottom:1px solid #ddd;text-align:center}
.gain{color:#27ae60;font-weight:bold}
.loss{color:#c0392b;font-weight:bold}
.flat{color:#7f8c8d}
.chart{text-align:center;margin:25px 0;overflow-x:auto}
.chart img{max-width:100%}
.failed-table th{background-color:#c0392b}
.notes{margin-top:30px;padding:20px;background-color:#f8f9fa;border-radius:8px;border-left:4px solid #17a2b8}
.notes p{font-style:italic;color:#6c757d;margin-bottom:0}
.footer{margin-top:25px;text-align:center;font-size:12px;color:#95a5a6}
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<div class="info">
Reference Date: {{.StartDate}} (Raw Market Prices - Not Dividend Adjusted)<br>
Investment Amount: {{.Investment}} per symbol &middot; Working: {{.WorkingCount}}/{{.TotalCount}} &middot; Verified: {{.VerifiedCount}}/{{.TotalCount}}
</div>
<div class="summary">
<div class="card"><div class="label">Total Current Value</div><div class="value">{{.TotalValue}}</div></div>
<div class="card"><div class="label">Total Dividends</div><div class="value">{{.TotalDividends}}</div></div>
<div class="card"><div class="label">Gain/Loss (Price Only)</div><div class="value {{.GainClass}}">{{.GainLoss}} ({{.GainLossPct}})</div></div>
<div class="card"><div class="label">Total Return (Price + Dividends)</div><div class="value {{.ReturnClass}}">{{.TotalReturn}} ({{.TotalReturnPct}})</div></div>
</div>
{{if .ChartSrc}}<div class="chart"><img src="{{.ChartSrc}}" alt="Current value by symbol"></div>{{end}}
{{if .Records}}
<table id="resultsTable">
<thead>
<tr>
<th>Symbol</th>
<th>Initial Share Price USD</th>
<th>Shares Purchased</th>
<th>Current Share Price USD</th>
<th>Current Portfolio Value USD</th>
<th>Dividends Collected USD</th>
<th>Gain/Loss USD</th>
<th>Gain/Loss %</th>
<th>Total Return USD</th>
<th>Total Return %</th>
<th>Verified</th>
</tr>
</thead>
<tbody>
{{range .Records}}
<tr>
<td>{{.Symbol}}</td>
<td data-sort="{{index .Sort 0}}">{{.InitialPrice}}</td>
<td data-sort="{{index .Sort 1}}">{{.Shares}}</td>
<td data-sort="{{index .Sort 2}}">{{.CurrentPrice}}</td>
<td data-sort="{{index .Sort 3}}">{{.CurrentValue}}</td>
<td data-sort="{{index .Sort 4}}">{{.Dividends}}</td>
<td data-sort="{{index .Sort 5}}" class="{{.GainClass}}">{{.GainLoss}}</td>
<td data-sort="{{index .Sort 6}}" class="{{.GainClass}}">{{.GainLossPct}}</td>
<td data-sort="{{index .Sort 7}}" class="{{.ReturnClass}}">{{.TotalReturn}}</td>
<td data-sort="{{index .Sort 8}}" class="{{.ReturnClass}}">{{.TotalReturnPct}}</td>
<td>{{.Status}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
{{if .Failed}}
<div class="failed-table">
<h2>Failed to Retrieve Data</h2>
<table>
<thead><tr><th>Symbol</th><th>Status</th></tr></thead>
<tbody>
{{range .Failed}}<tr><td>{{.Symbol}}</td><td>{{.Status}}</td></tr>
{{end}}</tbody>
</table>
</div>
{{end}}
{{if .Footnotes}}
<div class="notes">
<h3>Notes</h3>
<ul>
{{range .Footnotes}}<li>{{.}}</li>
{{end}}</ul>
<p>Symbols marked with ** started trading after the preferred reference date and use their actual launch date.</p>
</div>
{{end}}
<div class="footer">Generated {{.GeneratedAt}}</div>
</div>
<script>
document.addEventListener('DOMContentLoaded', function () {
  var table = document.getElementById('resultsTable');
  if (!table) return;
  var headers = table.querySelectorAll('th');
  headers.forEach(function (th, col) {
    th.addEventListener('click', function () {
      var asc = !th.classList.contains('sort-asc');
      headers.forEach(function (h) { h.classList.remove('sort-asc', 'sort-desc'); });
      th.classList.add(asc ? 'sort-asc' : 'sort-desc');
      var tbody = table.querySelector('tbody');
      var rows = Array.prototype.slice.call(tbody.querySelectorAll('tr'));
      rows.sort(function (a, b) {
        var ca = a.cells[col], cb = b.cells[col];
        var na = ca.getAttribute('data-sort'), nb = cb.getAttribute('data-sort');
        var cmp;
        if (na !== null && nb !== null) {
          cmp = parseFloat(na) - parseFloat(nb);
        } else {
          cmp = ca.textContent.localeCompare(cb.textContent);
        }
        return asc ? cmp : -cmp;
      });
      rows.forEach(function (r) { tbody.appendChild(r); });
    });
  });
});
</script>
</body>
</html>
`))
