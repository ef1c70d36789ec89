package tracing

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Application measures
var (
	EmailsSent     = stats.Int64("mailforge/emails_sent", "Campaign emails delivered to the mailer", stats.UnitDimensionless)
	EmailsFailed   = stats.Int64("mailforge/emails_failed", "Campaign emails the mailer rejected", stats.UnitDimensionless)
	TemplateSaves  = stats.Int64("mailforge/builder_saves", "Template saves attempted from the builder", stats.UnitDimensionless)
	ActiveSessions = stats.Int64("mailforge/builder_sessions", "Builder sessions created or closed (+1/-1)", stats.UnitDimensionless)
)

// KeyOutcome tags a save with "success" or "failure"
var KeyOutcome = tag.MustNewKey("outcome")

// ApplicationViews returns the views aggregating the application measures
func ApplicationViews() []*view.View {
	return []*view.View{
		{Name: "mailforge/emails_sent_total", Measure: EmailsSent, Aggregation: view.Sum()},
		{Name: "mailforge/emails_failed_total", Measure: EmailsFailed, Aggregation: view.Sum()},
		{Name: "mailforge/builder_saves_total", Measure: TemplateSaves, Aggregation: view.Count(), TagKeys: []tag.Key{KeyOutcome}},
		{Name: "mailforge/builder_sessions_active", Measure: ActiveSessions, Aggregation: view.Sum()},
	}
}

// RecordSave records a builder save outcome
func RecordSave(ctx context.Context, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyOutcome, outcome)}, TemplateSaves.M(1))
}

// RecordSendResult records the outcome of a bulk send
func RecordSendResult(ctx context.Context, sent, failed int) {
	stats.Record(ctx, EmailsSent.M(int64(sent)), EmailsFailed.M(int64(failed)))
}

// RecordSessionDelta records sessions opened (positive) or closed (negative)
func RecordSessionDelta(ctx context.Context, delta int64) {
	stats.Record(ctx, ActiveSessions.M(delta))
}
