package reports

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"os"
	"time"

	"github.com/nzai/dayk/mailers"
	"go.uber.org/zap"
)

// NoDataPlaceholder shown when ranking column is absent
const NoDataPlaceholder = "目前無數據"

var periodNames = map[string]string{
	"Week":  "週",
	"Month": "月",
	"Year":  "年",
}

// Chart chart image embedded in report
type Chart struct {
	ID    string
	Label string
	Path  string
}

// PeriodReport period distribution text
type PeriodReport struct {
	Period string
	Text   string
}

// Input report input
type Input struct {
	Market  string
	Date    time.Time
	Charts  []Chart
	Table   *Table
	Periods []PeriodReport
}

type link struct {
	URL  string
	Text string
}

type chartView struct {
	Label  string
	Source template.URL
}

type periodView struct {
	Name string
	Text string
}

type reportView struct {
	Market      string
	Date        string
	Destination string
	Charts      []chartView
	Periods     []periodView
	TopN        int
	Links       []link
	Placeholder string
}

var reportTemplate = template.Must(template.New("report").Parse(`<div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 850px; margin: auto; border: 1px solid #eee; padding: 20px; border-radius: 10px;">
<h2 style="color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px;">🚀 {{.Market}} 全方位市場監控報表</h2>
<p style="color: #7f8c8d; font-size: 14px;">報告生成時間: {{.Date}}</p>
<div style="background-color: #fdfefe; border-left: 5px solid #e74c3c; padding: 10px; margin: 20px 0; font-size: 14px;">💡 提示：點擊下方表格中的<b>股票代號</b>，可直接跳轉至該市場的專業技術線圖（{{.Destination}}）。</div>
{{range .Charts}}<h3 style="color: #2980b9; margin-top: 30px;">📍 {{.Label}}</h3>
<img src="{{.Source}}" style="width:100%; max-width:800px; border-radius: 5px; box-shadow: 0 4px 8px rgba(0,0,0,0.1);">
{{end}}<div style="background-color: #f4f7f6; padding: 15px; border-radius: 8px; margin-top: 40px;">
{{range .Periods}}<h4 style="color: #16a085; margin-bottom: 5px;">📊 {{.Name}}K 報酬分布明細 (含飆股清單)</h4>
<pre style="background-color: #ffffff; padding: 10px; border: 1px solid #ddd; font-size: 12px; white-space: pre-wrap; word-wrap: break-word;">{{.Text}}</pre>
{{end}}</div>
<hr style="border: 0; border-top: 1px solid #eee; margin: 40px 0;">
<h4 style="color: #c0392b;">🔥 本週表現最強動能 Top {{.TopN}}</h4>
<div style="line-height: 2; font-size: 13px; color: #34495e;">{{if .Links}}{{range $index, $link := .Links}}{{if $index}} | {{end}}<a href="{{$link.URL}}" style="text-decoration:none; color:#0366d6;">{{$link.Text}}</a>{{end}}{{else}}{{.Placeholder}}{{end}}</div>
<p style="margin-top: 50px; font-size: 12px; color: #bdc3c7; text-align: center;">此報表為自動生成，僅供研究參考，不構成投資建議。</p>
</div>
`))

// PeriodName return chinese name of period, unknown periods keep their label
func PeriodName(period string) string {
	if name, found := periodNames[period]; found {
		return name
	}

	return period
}

// Compose render report html
func Compose(input *Input, rankColumn string, topN int) (string, error) {
	market := Classify(input.Market)

	view := reportView{
		Market:      input.Market,
		Date:        input.Date.Format("2006-01-02"),
		Destination: market.Destination(),
		TopN:        topN,
		Placeholder: NoDataPlaceholder,
	}

	for _, chart := range input.Charts {
		view.Charts = append(view.Charts, chartView{
			Label:  chart.Label,
			Source: template.URL("cid:" + chart.ID),
		})
	}

	for _, period := range input.Periods {
		view.Periods = append(view.Periods, periodView{Name: PeriodName(period.Period), Text: period.Text})
	}

	if input.Table != nil {
		rows, _ := input.Table.Top(rankColumn, topN)
		for _, row := range rows {
			view.Links = append(view.Links, link{
				URL:  market.URL(row.Ticker),
				Text: row.Ticker + "(" + row.Name() + ")",
			})
		}
	}

	buffer := new(bytes.Buffer)
	err := reportTemplate.Execute(buffer, view)
	if err != nil {
		zap.L().Error("render report failed", zap.Error(err), zap.String("market", input.Market))
		return "", err
	}

	return buffer.String(), nil
}

// Attachments read chart files as inline attachments, any unreadable chart fails all
func Attachments(charts []Chart) ([]mailers.Attachment, error) {
	attachments := make([]mailers.Attachment, 0, len(charts))
	for _, chart := range charts {
		buffer, err := os.ReadFile(chart.Path)
		if err != nil {
			zap.L().Error("read chart failed", zap.Error(err), zap.String("id", chart.ID), zap.String("path", chart.Path))
			return nil, err
		}

		attachments = append(attachments, mailers.Attachment{
			Filename:    chart.ID + ".png",
			Content:     base64.StdEncoding.EncodeToString(buffer),
			ContentID:   chart.ID,
			ContentType: "image/png",
		})
	}

	return attachments, nil
}
