package kafka

import (
	"context"
	"testing"
)

func newTestProducer(t *testing.T, cfg Config) *Producer {
	t.Helper()
	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	return p
}

func TestNewProducer(t *testing.T) {
	p := newTestProducer(t, Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	})

	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.transport != nil {
		t.Error("expected default transport without TLS or SASL")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerSASL(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantErr   bool
	}{
		{name: "default is plain", mechanism: ""},
		{name: "plain", mechanism: "PLAIN"},
		{name: "scram 256", mechanism: "SCRAM-SHA-256"},
		{name: "scram 512 lower case", mechanism: "scram-sha-512"},
		{name: "unsupported", mechanism: "GSSAPI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProducer(Config{
				Brokers:       []string{"kafka:9092"},
				SASLEnabled:   true,
				SASLMechanism: tt.mechanism,
				SASLUsername:  "risk",
				SASLPassword:  "secret",
				TLS:           true,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.transport == nil || p.transport.SASL == nil || p.transport.TLS == nil {
				t.Fatal("expected TLS and SASL on the transport")
			}
		})
	}
}

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("expected empty config to be disabled")
	}
	if (Config{Brokers: []string{" "}}).Enabled() {
		t.Error("expected blank broker to be disabled")
	}
	if !(Config{Brokers: []string{"kafka:9092"}}).Enabled() {
		t.Error("expected broker to enable producer")
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("risk.events")
	w2 := p.getOrCreateWriter("risk.events")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("risk.audit")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestPublishNoMessages(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092"}})

	if err := p.Publish(context.Background(), "risk.events"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.writers) != 0 {
		t.Error("expected no writer to be created for an empty publish")
	}
}

func TestProducerClose(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092"}})

	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestPingWithoutBrokers(t *testing.T) {
	p := newTestProducer(t, Config{})
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestPingUnreachableBroker(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"127.0.0.1:1"}})
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}
