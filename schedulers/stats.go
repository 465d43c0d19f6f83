package schedulers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nzai/dayk/notifiers"
	"github.com/nzai/dayk/recorder"
)

// RunStats download run statistics, only the aggregating goroutine mutates it
type RunStats struct {
	counts       map[recorder.Kind]int
	errors       map[string]int
	sampleLength int
}

// NewRunStats create run stats, error messages are bucketed by their first sampleLength runes
func NewRunStats(sampleLength int) *RunStats {
	return &RunStats{
		counts:       make(map[recorder.Kind]int, len(recorder.Kinds)),
		errors:       make(map[string]int),
		sampleLength: sampleLength,
	}
}

// Add add one outcome
func (s *RunStats) Add(outcome recorder.Outcome) {
	s.counts[outcome.Kind]++

	if outcome.Kind != recorder.KindError {
		return
	}

	message := outcome.Message
	if message == "" {
		message = recorder.UnknownErrorMessage
	}

	s.errors[s.sample(message)]++
}

func (s RunStats) sample(message string) string {
	runes := []rune(message)
	if s.sampleLength <= 0 || len(runes) <= s.sampleLength {
		return message
	}

	return string(runes[:s.sampleLength])
}

// Count return outcome count of kind
func (s RunStats) Count(kind recorder.Kind) int {
	return s.counts[kind]
}

// Total return outcome count
func (s RunStats) Total() int {
	total := 0
	for _, count := range s.counts {
		total += count
	}

	return total
}

// ErrorBuckets return error buckets by descending count, ties by message
func (s RunStats) ErrorBuckets() []notifiers.ErrorBucket {
	buckets := make([]notifiers.ErrorBucket, 0, len(s.errors))
	for message, count := range s.errors {
		buckets = append(buckets, notifiers.ErrorBucket{Message: message, Count: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}

		return buckets[i].Message < buckets[j].Message
	})

	return buckets
}

// Print print run report
func (s RunStats) Print(w io.Writer) {
	line := strings.Repeat("=", 50)

	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "%s: 📊 下載稽核報告:\n", time.Now().Format("15:04:05"))
	fmt.Fprintf(w, "   - ✅ 成功下載: %d\n", s.Count(recorder.KindSuccess))
	fmt.Fprintf(w, "   - 📁 原本已存在: %d\n", s.Count(recorder.KindExists))
	fmt.Fprintf(w, "   - 🔍 Yahoo無資料 (Empty): %d\n", s.Count(recorder.KindEmpty))
	fmt.Fprintf(w, "   - ❌ 執行錯誤 (Error): %d\n", s.Count(recorder.KindError))

	buckets := s.ErrorBuckets()
	if len(buckets) > 0 {
		fmt.Fprint(w, "\n⚠️ 錯誤原因細分統計:\n")
		for _, bucket := range buckets {
			fmt.Fprintf(w, "   - [%d次]: %s\n", bucket.Count, bucket.Message)
		}
	}

	fmt.Fprintf(w, "%s\n\n", line)
}

// Summary convert to notification summary
func (s RunStats) Summary(id string, start, end time.Time) *notifiers.RunSummary {
	return &notifiers.RunSummary{
		ID:      id,
		Start:   start.Unix(),
		End:     end.Unix(),
		Total:   s.Total(),
		Success: s.Count(recorder.KindSuccess),
		Exists:  s.Count(recorder.KindExists),
		Empty:   s.Count(recorder.KindEmpty),
		Error:   s.Count(recorder.KindError),
		Errors:  s.ErrorBuckets(),
	}
}
