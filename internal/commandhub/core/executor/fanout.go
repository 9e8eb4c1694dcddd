package executor

import (
	"context"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// FanOut applies fn to every item in order, one at a time.
// Per-item failures are recorded and never stop the batch; nothing is rolled back.
// Empty ids are skipped. Once ctx is done the remaining items are recorded as failed.
func FanOut(ctx context.Context, items []string, fn func(ctx context.Context, id string) error) *model.Outcome {
	out := &model.Outcome{Items: make([]model.ItemResult, 0, len(items))}
	for _, id := range items {
		if id == "" {
			continue
		}
		r := model.ItemResult{ItemID: id}
		if err := ctx.Err(); err != nil {
			r.Error = err.Error()
		} else if err := fn(ctx, id); err != nil {
			r.Error = err.Error()
		} else {
			r.Succeeded = true
		}
		out.Items = append(out.Items, r)
	}
	return out
}
