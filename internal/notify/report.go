package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/tracker"
)

// Templates and renderers for the two outbound mails: the daily
// recommendation report and the performance check summary.

var dailyReportTmpl = template.Must(template.New("daily").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Günlük Hisse Önerileri — {{.Date}}</h2>
  <p>Piyasa görünümü: <b>{{.MarketMood}}</b></p>
  {{if .Recommendations}}
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="background: #f0f0f0;">
      <th>#</th><th>Hisse</th><th>Sektör</th><th>Fiyat</th>
      <th>Puan</th><th>Sinyal</th><th>Destek</th><th>Direnç</th><th>R/R</th>
    </tr>
    {{range .Recommendations}}
    <tr>
      <td>{{.Rank}}</td>
      <td><b>{{.Ticker}}</b></td>
      <td>{{.Sector}}</td>
      <td>{{printf "%.2f" .Price}}</td>
      <td>{{printf "%.1f" .FinalScore}}</td>
      <td>{{.RatingLabel}}</td>
      <td>{{printf "%.2f" .Support}}</td>
      <td>{{printf "%.2f" .Resistance}}</td>
      <td>{{.RiskRewardLabel}}</td>
    </tr>
    {{end}}
  </table>
  {{range .Recommendations}}
  {{if .Signals}}
  <p><b>{{.Ticker}}</b>: {{range .Signals}}{{.}} &middot; {{end}}</p>
  {{end}}
  {{end}}
  {{else}}
  <p>Bugün için uygun öneri bulunamadı.</p>
  {{end}}
  <p style="color: #888; font-size: 12px;">Bu e-posta otomatik oluşturulmuştur. Yatırım tavsiyesi değildir.</p>
</body>
</html>
`))

type dailyReportView struct {
	Date            string
	MarketMood      string
	Recommendations []recommendationView
}

type recommendationView struct {
	contracts.Recommendation
	RatingLabel     string
	RiskRewardLabel string
}

// RenderDailyReport produces the plain-text and HTML bodies for one
// recommendation set.
func RenderDailyReport(set *contracts.RecommendationSet) (plain string, htmlBody string, err error) {
	view := dailyReportView{
		Date:       set.GeneratedAt.Format("02.01.2006"),
		MarketMood: set.MarketMood,
	}
	for _, rec := range set.Recommendations {
		rrLabel := "-"
		if rec.RiskReward > 0 {
			rrLabel = fmt.Sprintf("%.2f", rec.RiskReward)
		}
		view.Recommendations = append(view.Recommendations, recommendationView{
			Recommendation:  rec,
			RatingLabel:     rec.Rating.Display(),
			RiskRewardLabel: rrLabel,
		})
	}

	var buf bytes.Buffer
	if err := dailyReportTmpl.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("failed to render daily report: %w", err)
	}

	return renderDailyPlain(set), buf.String(), nil
}

func renderDailyPlain(set *contracts.RecommendationSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Günlük Hisse Önerileri — %s\n", set.GeneratedAt.Format("02.01.2006"))
	fmt.Fprintf(&b, "Piyasa görünümü: %s\n\n", set.MarketMood)

	if len(set.Recommendations) == 0 {
		b.WriteString("Bugün için uygun öneri bulunamadı.\n")
		return b.String()
	}

	for _, rec := range set.Recommendations {
		fmt.Fprintf(&b, "%d. %s (%s) — %.1f puan, %s, fiyat %.2f\n",
			rec.Rank, rec.Ticker, rec.Sector, rec.FinalScore, rec.Rating.Display(), rec.Price)
		if rec.Support > 0 && rec.Resistance > 0 {
			fmt.Fprintf(&b, "   destek %.2f / direnç %.2f", rec.Support, rec.Resistance)
			if rec.RiskReward > 0 {
				fmt.Fprintf(&b, " (R/R %.2f)", rec.RiskReward)
			}
			b.WriteString("\n")
		}
		if len(rec.Signals) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(rec.Signals, " · "))
		}
	}

	return b.String()
}

// RenderCheckReport produces the plain-text and HTML bodies for a
// performance check run.
func RenderCheckReport(report *tracker.CheckReport) (plain string, htmlBody string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Performans Kontrolü — %s\n\n", report.AsOf.Format("02.01.2006"))

	for _, h := range report.Horizons {
		if h.Checked == 0 {
			fmt.Fprintf(&b, "%d gün: kontrol edilecek öneri yok\n", h.HorizonDays)
			continue
		}
		fmt.Fprintf(&b, "%d gün: %d kontrol, %d başarı, %d zarar, ortalama getiri %%%.2f\n",
			h.HorizonDays, h.Checked, h.Successes, h.Losses, h.AvgReturn)
	}
	if report.Skipped > 0 {
		fmt.Fprintf(&b, "\nVeri eksikliği nedeniyle atlanan: %d\n", report.Skipped)
	}

	plain = b.String()
	htmlBody = "<html><body style=\"font-family: Arial, sans-serif;\"><pre>" +
		template.HTMLEscapeString(plain) + "</pre></body></html>"
	return plain, htmlBody
}
