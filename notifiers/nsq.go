package notifiers

import (
	"github.com/nsqio/go-nsq"
	"go.uber.org/zap"
)

// Nsq notify by nsq
type Nsq struct {
	topic    string
	producer *nsq.Producer
}

// NewNsq create new nsq notifier
func NewNsq(broker, topic string) (Notifier, error) {
	producer, err := nsq.NewProducer(broker, nsq.NewConfig())
	if err != nil {
		zap.L().Error("init nsq producer failed",
			zap.Error(err),
			zap.String("broker", broker))
		return nil, err
	}

	return &Nsq{topic: topic, producer: producer}, nil
}

// Notify notify download run result
func (s Nsq) Notify(result *RunSummary) {
	buffer, err := result.Marshal()
	if err != nil {
		zap.L().Warn("marshal run summary failed",
			zap.Error(err),
			zap.Any("result", result))
		return
	}

	err = s.producer.Publish(s.topic, buffer)
	if err != nil {
		zap.L().Warn("publish run summary failed",
			zap.Error(err),
			zap.String("topic", s.topic),
			zap.String("id", result.ID))
		return
	}

	zap.L().Info("publish run summary success",
		zap.String("topic", s.topic),
		zap.String("id", result.ID))
}

// Close close producer
func (s Nsq) Close() {
	if s.producer == nil {
		return
	}

	s.producer.Stop()
}
