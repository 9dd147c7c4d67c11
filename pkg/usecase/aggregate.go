package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/metrics"
)

// IsStructurallyValid reports whether the payload is an object carrying a
// response body object
func IsStructurallyValid(raw *model.RawResponse) bool {
	return model.DecodeEnvelope(raw).HasBody()
}

// IsAPISuccess reports whether the envelope carries the success result code
func IsAPISuccess(env *model.Envelope) bool {
	return env.IsSuccess()
}

// Aggregate flattens the items of every structurally valid and successful
// response, in input order. It fails only when no response is structurally
// valid.
func Aggregate(ctx context.Context, responses []*model.RawResponse) ([]model.AlertRecord, error) {
	logger := ctxlog.From(ctx)

	envelopes := make([]*model.Envelope, 0, len(responses))
	for _, raw := range responses {
		env := model.DecodeEnvelope(raw)
		if !env.HasBody() {
			continue
		}
		envelopes = append(envelopes, env)
	}
	if len(envelopes) == 0 {
		return nil, goerr.Wrap(model.ErrInvalidStructure, "no valid response",
			goerr.V("responses", len(responses)))
	}

	items := make([]model.AlertRecord, 0)
	for _, env := range envelopes {
		if !IsAPISuccess(env) {
			var code, msg string
			if env.Response.Header != nil {
				code = env.Response.Header.ResultCode
				msg = env.Response.Header.ResultMsg
			}
			logger.Debug("skip unsuccessful response", "resultCode", code, "resultMsg", msg)
			continue
		}

		if dropped := env.Response.Body.Items.Dropped; dropped > 0 {
			logger.Debug("dropped malformed advisory records", "count", dropped)
			metrics.AlertRecordsDropped.Add(float64(dropped))
		}
		items = append(items, env.Records()...)
	}
	return items, nil
}
