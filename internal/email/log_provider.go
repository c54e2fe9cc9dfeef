package email

import (
	"context"
	"sync"

	"tfl_backend/internal/logger"
)

// LogProvider writes links to the log instead of sending mail. Used in
// development when SMTP is not configured.
type LogProvider struct {
	mu   sync.Mutex
	sent []Sent
}

// Sent is one message recorded by LogProvider
type Sent struct {
	Kind Kind
	To   string
	URL  string
}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendVerification(ctx context.Context, to, verifyURL string) error {
	p.record(ctx, KindVerification, to, verifyURL)
	return nil
}

func (p *LogProvider) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	p.record(ctx, KindPasswordReset, to, resetURL)
	return nil
}

func (p *LogProvider) record(ctx context.Context, kind Kind, to, url string) {
	p.mu.Lock()
	p.sent = append(p.sent, Sent{Kind: kind, To: to, URL: url})
	p.mu.Unlock()

	logger.CtxInfo(ctx, "email not sent (SMTP not configured)", "kind", kind, "to", to, "url", url)
}

// Sent returns a copy of everything recorded so far
func (p *LogProvider) Sent() []Sent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sent, len(p.sent))
	copy(out, p.sent)
	return out
}

// Last returns the most recent message of kind sent to to
func (p *LogProvider) Last(kind Kind, to string) (Sent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.sent) - 1; i >= 0; i-- {
		if p.sent[i].Kind == kind && p.sent[i].To == to {
			return p.sent[i], true
		}
	}
	return Sent{}, false
}
