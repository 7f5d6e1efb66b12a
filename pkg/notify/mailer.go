// Package notify is the outbound notification port. Delivery is always
// best-effort: a failed notification never fails the operation that
// triggered it.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/job"
	"github.com/rsinha/jobmatch/pkg/match"
)

// Mailer sends candidate-facing notifications.
type Mailer interface {
	ApplicationReceived(ctx context.Context, c candidate.Candidate, j job.Job, a match.Application) error
}

// LogMailer is the default implementation: it only records that a mail
// would have been sent. Swap in a real provider behind the same interface.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) ApplicationReceived(ctx context.Context, c candidate.Candidate, j job.Job, a match.Application) error {
	m.log.Info("application confirmation mail (log only)",
		zap.String("to", c.Email),
		zap.String("job", j.Title),
		zap.String("company", j.Company),
		zap.Int("matchScore", a.MatchScore),
	)
	return nil
}

var _ Mailer = (*LogMailer)(nil)
