package cmd

import (
	"fmt"
	"io"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/config"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/digest"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deliveryPlan describes one digest run.
type deliveryPlan struct {
	groups      []digest.Group
	render      digest.Renderer
	stopOnError bool
	dryRun      bool
	to          string

	// Progress lines printed after each real send.
	sentLine   func(g digest.Group) string
	failedLine func(g digest.Group, err error) string
}

// deliveryJSON is the --output json shape of a digest run.
type deliveryJSON struct {
	Recipient string            `json:"recipient,omitempty"`
	DryRun    bool              `json:"dryRun"`
	Messages  []messageJSONItem `json:"messages"`
}

type messageJSONItem struct {
	Group   string `json:"group"`
	Tasks   int    `json:"tasks"`
	Message string `json:"message"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}

// previewSender prints messages instead of sending them.
type previewSender struct {
	w        io.Writer
	markdown bool
	quiet    bool
}

func (p *previewSender) Send(recipient, body string) error {
	if p.quiet {
		return nil
	}
	if p.markdown {
		return output.RenderMessage(p.w, body, 0)
	}
	_, err := fmt.Fprintf(p.w, "%s\n\n", body)
	return err
}

// fetchTasks runs a filtered query and flattens the resulting pages. A limit
// of 0 fetches every matching page.
func fetchTasks(client *api.Client, databaseID string, filter *api.Filter, limit int, names digest.PropertyNames, logger *zap.Logger) ([]digest.Task, error) {
	pages, err := client.QueryAll(databaseID, filter, nil, limit)
	if err != nil {
		return nil, err
	}
	logger.Debug("queried tasks", zap.String("database", databaseID), zap.Int("pages", len(pages)))
	return digest.FromPages(pages, names), nil
}

// deliver sends or previews every group in plan. Recipient and WhatsApp
// credentials are checked before the first message goes out.
func deliver(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, plan deliveryPlan) (digest.Report, error) {
	w := cmd.OutOrStdout()
	jsonMode := output.IsJSON(outputFormat)

	recipient := plan.to
	if recipient == "" {
		recipient = cfg.WhatsApp.Number
	}

	var sender digest.Sender
	if plan.dryRun {
		sender = &previewSender{w: w, markdown: isInteractive(), quiet: jsonMode}
	} else {
		r, err := requireRecipient(cfg, plan.to)
		if err != nil {
			return digest.Report{}, err
		}
		recipient = r
		s, err := newSender(cfg, logger)
		if err != nil {
			return digest.Report{}, err
		}
		sender = s
	}

	opts := digest.DeliverOptions{
		StopOnError: plan.stopOnError,
		Logger:      logger.With(zap.Bool("dry_run", plan.dryRun)),
	}
	if !jsonMode && !plan.dryRun {
		opts.OnSent = func(g digest.Group) {
			output.MutationSingle(w, plan.sentLine(g))
		}
		opts.OnFailed = func(g digest.Group, err error) {
			if plan.failedLine != nil {
				output.MutationSingle(w, plan.failedLine(g, err))
			}
		}
	}

	report, err := digest.Deliver(sender, recipient, plan.groups, plan.render, opts)

	switch {
	case jsonMode:
		if jerr := output.JSON(w, buildDeliveryJSON(plan, recipient, report)); jerr != nil {
			return report, jerr
		}
	case plan.dryRun:
		to := recipient
		if to == "" {
			to = "(no recipient configured)"
		}
		output.MutationDryRun(w, fmt.Sprintf("Would send %d message(s) to %s:", len(plan.groups), to), groupItems(plan.groups))
	case err == nil && len(report.Failed) == 0:
		fmt.Fprintln(w)
		header := output.Greenf("Delivered %d task(s) in %d message(s) to %s:", report.Delivered(), len(report.Sent), recipient)
		output.MutationBatch(w, header, groupItems(report.Sent))
	case !plan.stopOnError:
		failed := make([]output.FailedItem, len(report.Failed))
		for i, f := range report.Failed {
			failed[i] = output.FailedItem{Ref: f.Group.Name, Reason: f.Err.Error()}
		}
		fmt.Fprintln(w)
		header := fmt.Sprintf("Sent %d of %d message(s) to %s:", len(report.Sent), len(plan.groups), recipient)
		output.MutationPartialFailure(w, header, groupItems(report.Sent), failed)
	}

	return report, err
}

func groupItems(groups []digest.Group) []output.MutationItem {
	items := make([]output.MutationItem, len(groups))
	for i, g := range groups {
		items[i] = output.MutationItem{Ref: g.Name, Title: fmt.Sprintf("%d task(s)", len(g.Tasks))}
	}
	return items
}

func buildDeliveryJSON(plan deliveryPlan, recipient string, report digest.Report) deliveryJSON {
	failed := make(map[string]error, len(report.Failed))
	for _, f := range report.Failed {
		failed[f.Group.Name] = f.Err
	}
	sent := make(map[string]bool, len(report.Sent))
	for _, g := range report.Sent {
		sent[g.Name] = true
	}

	out := deliveryJSON{Recipient: recipient, DryRun: plan.dryRun, Messages: []messageJSONItem{}}
	for _, g := range plan.groups {
		item := messageJSONItem{
			Group:   g.Name,
			Tasks:   len(g.Tasks),
			Message: plan.render(g),
			Sent:    sent[g.Name] && !plan.dryRun,
		}
		if err, ok := failed[g.Name]; ok {
			item.Error = err.Error()
		}
		out.Messages = append(out.Messages, item)
	}
	return out
}

// statusesOrDefault returns the --status values, falling back to config.
func statusesOrDefault(flag, configured []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return configured
}
