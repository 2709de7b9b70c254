package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"admissions/pkg/platform/sentinel"
	"admissions/pkg/requestcontext"
)

const defaultProduceTimeout = 2 * time.Second

// KafkaSink mirrors audit lines to a Kafka topic. Records are keyed by the
// request ID when one is present so a request's lines share a partition.
type KafkaSink struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
}

// NewKafkaSink creates a producer for topic. The client connects lazily, so
// construction succeeds even while brokers are unreachable.
func NewKafkaSink(brokers []string, topic string, opts ...kgo.Opt) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	client, err := kgo.NewClient(append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(0),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic, timeout: defaultProduceTimeout}, nil
}

func (k *KafkaSink) Append(ctx context.Context, line []byte) error {
	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	rec := &kgo.Record{Topic: k.topic, Value: trimNewline(append([]byte(nil), line...))}
	if id := requestcontext.RequestID(ctx); id != "" {
		rec.Key = []byte(id)
	}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("%w: produce to %s: %w", sentinel.ErrUnavailable, k.topic, err)
	}
	return nil
}

// Close releases the Kafka client.
func (k *KafkaSink) Close() error {
	k.client.Close()
	return nil
}

// EnsureTopics creates any missing audit topics with the broker's default
// partition count and replication factor. Existing topics are left alone.
func EnsureTopics(ctx context.Context, brokers []string, topics ...string) error {
	if len(brokers) == 0 {
		return errors.New("kafka brokers are required")
	}
	if len(topics) == 0 {
		return errors.New("at least one topic is required")
	}

	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return fmt.Errorf("create kafka client: %w", err)
	}
	defer client.Close()

	resp, err := kadm.NewClient(client).CreateTopics(ctx, -1, -1, nil, topics...)
	if err != nil {
		return fmt.Errorf("%w: create topics: %w", sentinel.ErrUnavailable, err)
	}
	var errs []error
	for _, t := range resp.Sorted() {
		if t.Err != nil && !errors.Is(t.Err, kerr.TopicAlreadyExists) {
			errs = append(errs, fmt.Errorf("create topic %s: %w", t.Topic, t.Err))
		}
	}
	return errors.Join(errs...)
}
