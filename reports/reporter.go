package reports

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nzai/dayk/config"
	"github.com/nzai/dayk/mailers"
	"github.com/nzai/dayk/utils"
	"go.uber.org/zap"
)

const sendTimeout = time.Second * 30

// Reporter compose and send market report email
type Reporter struct {
	from       string
	to         []string
	rankColumn string
	topN       int
	newMailer  func(apiKey string) mailers.Mailer
}

// NewReporter create reporter
func NewReporter(c *config.Config) *Reporter {
	endpoint := c.Report.Endpoint
	return &Reporter{
		from:       c.Report.From,
		to:         c.Report.To,
		rankColumn: c.Report.RankColumn,
		topN:       c.Report.TopN,
		newMailer: func(apiKey string) mailers.Mailer {
			return mailers.NewResend(endpoint, apiKey, sendTimeout)
		},
	}
}

// apiKey return email api key from environment or .env file
func apiKey() string {
	// .env is optional
	_ = godotenv.Load()
	return os.Getenv(mailers.APIKeyEnv)
}

// Send compose and send report, every failure is logged and reported as false
func (r Reporter) Send(ctx context.Context, input *Input) bool {
	key := apiKey()
	if key == "" {
		zap.L().Error("email credential missing, report not sent",
			zap.Error(mailers.ErrCredentialMissing),
			zap.String("market", input.Market))
		return false
	}

	if input.Date.IsZero() {
		input.Date = utils.TodayZero(time.Now())
	}

	html, err := Compose(input, r.rankColumn, r.topN)
	if err != nil {
		return false
	}

	attachments, err := Attachments(input.Charts)
	if err != nil {
		zap.L().Error("prepare report attachments failed", zap.Error(err), zap.String("market", input.Market))
		return false
	}

	email := &mailers.Email{
		From:        r.from,
		To:          r.to,
		Subject:     fmt.Sprintf("🚀 %s 監控報告 - %s", input.Market, input.Date.Format("2006-01-02")),
		HTML:        html,
		Attachments: attachments,
	}

	id, err := r.newMailer(key).Send(ctx, email)
	if err != nil {
		zap.L().Error("send report failed", zap.Error(err), zap.String("market", input.Market))
		return false
	}

	zap.L().Info("send report success",
		zap.String("market", input.Market),
		zap.String("id", id),
		zap.Strings("to", r.to))

	return true
}
