package report

import (
	"bytes"
	"html/template"
	"time"

	"propel_backend/internal/models"
)

// Макет отчета. Воспроизводит структуру бумажного чек-листа:
// шапка объекта, сертификаты, счетчики, комнаты, подписи.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 20px; border-bottom: 2px solid #2c5f8a; padding-bottom: 6px; }
  h2 { font-size: 14px; color: #2c5f8a; margin-top: 18px; }
  table { width: 100%; border-collapse: collapse; margin-top: 6px; }
  td, th { border: 1px solid #ccc; padding: 5px 8px; text-align: left; }
  th { background: #f0f4f8; width: 35%; }
  .signature img { max-height: 80px; }
  .room { page-break-inside: avoid; }
</style>
</head>
<body>
<h1>Property Inspection Report</h1>

<h2>Property</h2>
<table>
  <tr><th>Address</th><td>{{.Property.PropertyAddress}}</td></tr>
  <tr><th>Tenant</th><td>{{.Property.TenantName}}</td></tr>
  <tr><th>Inspector</th><td>{{.Property.InspectorName}}</td></tr>
  <tr><th>Inspection date</th><td>{{fmtDate .Property.InspectionDate}}</td></tr>
</table>

<h2>Certificates</h2>
<table>
  <tr><th>EPC expiry</th><td>{{fmtDate .Property.EPCExpDate}}</td></tr>
  <tr><th>ECIR expiry</th><td>{{fmtDate .Property.ECIRExpDate}}</td></tr>
  <tr><th>Gas safety certificate expiry</th><td>{{fmtDate .Property.GasSafetyCertificateExpDate}}</td></tr>
</table>

<h2>Meters</h2>
<table>
  <tr><th>Electricity meter</th><td>{{.Property.ElectricityMeter}} (reading: {{.Property.ElectricityMeterReading}})</td></tr>
  <tr><th>Gas meter</th><td>{{.Property.GasMeter}} (reading: {{.Property.GasMeterReading}})</td></tr>
  <tr><th>Water meter</th><td>{{.Property.WaterMeter}} (reading: {{.Property.WaterMeterReading}})</td></tr>
</table>

<h2>Safety</h2>
<table>
  <tr><th>Smoke alarm</th><td>{{.Property.SmokeAlarm}}</td></tr>
  <tr><th>CO alarm</th><td>{{.Property.COAlarm}}</td></tr>
  <tr><th>Heating system</th><td>{{.Property.HeatingSystem}}</td></tr>
</table>

{{if .Property.PropertyDetails}}
<h2>Rooms</h2>
{{range .Property.PropertyDetails}}
<div class="room">
<table>
  <tr><th>Room</th><td>{{.Name}}</td></tr>
  <tr><th>Description</th><td>{{.Description}}</td></tr>
  <tr><th>Floor</th><td>{{.Floor}}</td></tr>
  <tr><th>Walls</th><td>{{.Walls}}</td></tr>
  <tr><th>Ceiling</th><td>{{.Ceiling}}</td></tr>
  <tr><th>Windows</th><td>{{.Windows}}</td></tr>
  <tr><th>Doors</th><td>{{.Doors}}</td></tr>
</table>
</div>
{{end}}
{{end}}

<h2>Remarks</h2>
<table>
  <tr><th>Advised tenant to</th><td>{{.Property.AdvisedTenantTo}}</td></tr>
  <tr><th>Asked landlord to</th><td>{{.Property.AskedLandlordTo}}</td></tr>
  <tr><th>Contractor instructed</th><td>{{.Property.ContractorInstructed}}</td></tr>
  <tr><th>Final remarks</th><td>{{.Property.FinalRemarks}}</td></tr>
</table>

<h2>Signatures</h2>
<table>
  <tr>
    <th>Inspector</th>
    <td class="signature">{{if .Property.SignatureInspector}}<img src="{{.Property.SignatureInspector}}">{{end}}</td>
  </tr>
  <tr>
    <th>Tenant</th>
    <td class="signature">{{if .Property.SignatureTenant}}<img src="{{.Property.SignatureTenant}}">{{end}}</td>
  </tr>
</table>

<p>Generated {{.GeneratedAt}}</p>
</body>
</html>`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmtDate": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02 Jan 2006")
	},
}).Parse(reportTemplate))

// BuildReportHTML собирает HTML-тело отчета из записи об инспекции
func BuildReportHTML(property *models.Property) ([]byte, error) {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, map[string]interface{}{
		"Property":    property,
		"GeneratedAt": time.Now().UTC().Format("02 Jan 2006 15:04 MST"),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
