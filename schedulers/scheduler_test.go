package schedulers

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nzai/dayk/recorder"
)

type fakeRecorder struct {
	mutex    sync.Mutex
	active   int32
	peak     int32
	records  []string
	outcomes map[string]recorder.Outcome
}

func (r *fakeRecorder) Record(ctx context.Context, record string) recorder.Outcome {
	active := atomic.AddInt32(&r.active, 1)
	defer atomic.AddInt32(&r.active, -1)

	for {
		peak := atomic.LoadInt32(&r.peak)
		if active <= peak || atomic.CompareAndSwapInt32(&r.peak, peak, active) {
			break
		}
	}

	time.Sleep(time.Millisecond * 5)

	r.mutex.Lock()
	r.records = append(r.records, record)
	r.mutex.Unlock()

	if outcome, found := r.outcomes[record]; found {
		return outcome
	}

	return recorder.Outcome{Kind: recorder.KindSuccess, Ticker: record}
}

func TestScheduler_Run(t *testing.T) {
	items := make([]string, 0, 20)
	for index := 0; index < 20; index++ {
		items = append(items, fmt.Sprintf("%04d.TW&測試%d", index, index))
	}

	fake := &fakeRecorder{}
	stats := NewScheduler(fake, 4, 50, false).Run(context.Background(), items)

	if got := stats.Count(recorder.KindSuccess); got != len(items) {
		t.Errorf("success = %d, want %d", got, len(items))
	}

	if stats.Total() != len(items) || len(fake.records) != len(items) {
		t.Errorf("total = %d, records = %d, want %d", stats.Total(), len(fake.records), len(items))
	}

	if peak := atomic.LoadInt32(&fake.peak); peak > 4 {
		t.Errorf("peak workers = %d, want <= 4", peak)
	}
}

func TestScheduler_RunMixed(t *testing.T) {
	fake := &fakeRecorder{
		outcomes: map[string]recorder.Outcome{
			"2317.TW&鴻海":  {Kind: recorder.KindExists, Ticker: "2317.TW"},
			"9999.TW&空殼":  {Kind: recorder.KindEmpty, Ticker: "9999.TW"},
			"BADRECORD":   {Kind: recorder.KindError, Ticker: "BADRECORD", Message: "Format error (missing &)"},
			"1234.TW&下市":  {Kind: recorder.KindError, Ticker: "1234.TW", Message: "timeout"},
			"5678.TW&下市二": {Kind: recorder.KindError, Ticker: "5678.TW", Message: "timeout"},
		},
	}

	items := []string{"2330.TW&台積電", "2317.TW&鴻海", "9999.TW&空殼", "BADRECORD", "1234.TW&下市", "5678.TW&下市二"}
	stats := NewScheduler(fake, 2, 50, false).Run(context.Background(), items)

	want := map[recorder.Kind]int{
		recorder.KindSuccess: 1,
		recorder.KindExists:  1,
		recorder.KindEmpty:   1,
		recorder.KindError:   3,
	}
	for kind, count := range want {
		if got := stats.Count(kind); got != count {
			t.Errorf("%s = %d, want %d", kind, got, count)
		}
	}

	buckets := stats.ErrorBuckets()
	if len(buckets) != 2 {
		t.Fatalf("error buckets = %v", buckets)
	}

	if buckets[0].Message != "timeout" || buckets[0].Count != 2 {
		t.Errorf("first bucket = %+v", buckets[0])
	}

	if buckets[1].Message != "Format error (missing &)" || buckets[1].Count != 1 {
		t.Errorf("second bucket = %+v", buckets[1])
	}

	output := new(bytes.Buffer)
	stats.Print(output)
	for _, line := range []string{
		"✅ 成功下載: 1",
		"📁 原本已存在: 1",
		"🔍 Yahoo無資料 (Empty): 1",
		"❌ 執行錯誤 (Error): 3",
		"[2次]: timeout",
		"[1次]: Format error (missing &)",
	} {
		if !strings.Contains(output.String(), line) {
			t.Errorf("RunStats.Print() missing %q in\n%s", line, output.String())
		}
	}

	if strings.Index(output.String(), "[2次]") > strings.Index(output.String(), "[1次]") {
		t.Errorf("RunStats.Print() buckets not in descending order")
	}
}

func TestScheduler_RunEmpty(t *testing.T) {
	stats := NewScheduler(&fakeRecorder{}, 4, 50, false).Run(context.Background(), nil)

	if stats.Total() != 0 || len(stats.ErrorBuckets()) != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}

	output := new(bytes.Buffer)
	stats.Print(output)
	if !strings.Contains(output.String(), "✅ 成功下載: 0") || strings.Contains(output.String(), "錯誤原因細分統計") {
		t.Errorf("RunStats.Print() = %s", output.String())
	}
}

func TestRunStats_Add(t *testing.T) {
	long := strings.Repeat("錯", 60)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short", "timeout", "timeout"},
		{"truncated by runes", long, strings.Repeat("錯", 50)},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"empty", "", recorder.UnknownErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewRunStats(50)
			stats.Add(recorder.Outcome{Kind: recorder.KindError, Ticker: "2330.TW", Message: tt.message})
			stats.Add(recorder.Outcome{Kind: recorder.KindError, Ticker: "2317.TW", Message: tt.message + "tail"})

			buckets := stats.ErrorBuckets()
			found := false
			for _, bucket := range buckets {
				if bucket.Message == tt.want {
					found = true
				}
			}

			if !found {
				t.Errorf("ErrorBuckets() = %v, want bucket %q", buckets, tt.want)
			}

			summary := stats.Summary("run", time.Unix(0, 0), time.Unix(60, 0))
			if summary.Error != 2 || summary.Total != 2 || summary.End != 60 {
				t.Errorf("Summary() = %+v", summary)
			}
		})
	}
}
