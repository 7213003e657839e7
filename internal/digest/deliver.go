package digest

import (
	"go.uber.org/zap"
)

// Sender delivers one message body to a recipient.
type Sender interface {
	Send(recipient, body string) error
}

// DeliverOptions controls a delivery run.
type DeliverOptions struct {
	// StopOnError aborts at the first failed send. Otherwise failures are
	// recorded and the remaining groups are still sent.
	StopOnError bool

	// OnSent and OnFailed are called after each attempt, in order.
	OnSent   func(Group)
	OnFailed func(Group, error)

	Logger *zap.Logger
}

// Failure is a group whose message could not be sent.
type Failure struct {
	Group Group
	Err   error
}

// Report is the outcome of a delivery run.
type Report struct {
	Sent   []Group
	Failed []Failure
}

// Delivered returns the number of tasks across sent groups.
func (r Report) Delivered() int {
	n := 0
	for _, g := range r.Sent {
		n += len(g.Tasks)
	}
	return n
}

// Deliver sends one message per group, in order. With StopOnError it
// returns the first send error; otherwise the error is nil and failures are
// listed in the report.
func Deliver(sender Sender, recipient string, groups []Group, render Renderer, opts DeliverOptions) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var report Report
	for _, g := range groups {
		body := render(g)
		log := logger.With(zap.String("group", g.Name), zap.Int("tasks", len(g.Tasks)))
		log.Debug("sending digest", zap.Int("chars", len([]rune(body))))

		if err := sender.Send(recipient, body); err != nil {
			log.Error("digest not sent", zap.Error(err))
			report.Failed = append(report.Failed, Failure{Group: g, Err: err})
			if opts.OnFailed != nil {
				opts.OnFailed(g, err)
			}
			if opts.StopOnError {
				return report, err
			}
			continue
		}

		log.Info("digest sent")
		report.Sent = append(report.Sent, g)
		if opts.OnSent != nil {
			opts.OnSent(g)
		}
	}
	return report, nil
}
