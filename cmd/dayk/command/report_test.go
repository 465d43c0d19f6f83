package command

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCharts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{"ordered", []string{"week:週K分布:/tmp/week.png", "month:月K分布:/tmp/month.png"}, 2, false},
		{"path with colon", []string{"week:週K:C:/charts/week.png"}, 1, false},
		{"missing path", []string{"week:週K"}, 0, true},
		{"empty id", []string{":週K:/tmp/week.png"}, 0, true},
		{"none", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charts, err := parseCharts(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCharts() error = %v, wantErr %v", err, tt.wantErr)
			}

			if len(charts) != tt.want {
				t.Errorf("parseCharts() = %v, want %d", charts, tt.want)
			}
		})
	}

	charts, _ := parseCharts([]string{"week:週K:C:/charts/week.png"})
	if charts[0].ID != "week" || charts[0].Label != "週K" || charts[0].Path != "C:/charts/week.png" {
		t.Errorf("parseCharts() = %+v", charts[0])
	}
}

func TestSendReport_Input(t *testing.T) {
	dir := t.TempDir()
	week := filepath.Join(dir, "week.txt")
	err := os.WriteFile(week, []byte("0-10%: 2330"), 0644)
	if err != nil {
		t.Fatalf("write period report failed: %v", err)
	}

	table := filepath.Join(dir, "result.csv")
	err = os.WriteFile(table, []byte("Ticker,Week_High\n2330.TW,5\n"), 0644)
	if err != nil {
		t.Fatalf("write table failed: %v", err)
	}

	r := SendReport{market: "台灣", table: table, date: "2024-01-02"}
	input, err := r.input([]string{"week:週K:" + filepath.Join(dir, "week.png")}, []string{"Week:" + week})
	if err != nil {
		t.Fatalf("SendReport.input() error = %v", err)
	}

	if input.Date.Format("2006-01-02") != "2024-01-02" || len(input.Charts) != 1 || input.Table == nil {
		t.Errorf("SendReport.input() = %+v", input)
	}

	if len(input.Periods) != 1 || input.Periods[0].Period != "Week" || input.Periods[0].Text != "0-10%: 2330" {
		t.Errorf("SendReport.input() periods = %+v", input.Periods)
	}

	r.date = "02/01/2024"
	if _, err = r.input(nil, nil); err == nil {
		t.Errorf("SendReport.input() with bad date error = nil")
	}

	r.date = ""
	if _, err = r.input(nil, []string{"Week:" + filepath.Join(dir, "missing.txt")}); err == nil {
		t.Errorf("SendReport.input() with missing period error = nil")
	}
}
