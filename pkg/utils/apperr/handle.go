package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// Handle logs a top-level error once. Failures of an upstream request also
// carry the user facing diagnostic.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{"error", err}
	if model.IsDiagnosed(err) {
		attrs = append(attrs, "diagnostic", model.Describe(err))
	}
	if status := model.StatusOf(err); status != 0 {
		attrs = append(attrs, "status", status)
	}

	ctxlog.From(ctx).Error("application error", attrs...)
}
