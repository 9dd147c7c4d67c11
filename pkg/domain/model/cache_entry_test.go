package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

func TestCacheEntry(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	raw := &model.RawResponse{Data: json.RawMessage(`{"response":{}}`), Status: 200, StatusText: "OK"}

	entry := model.NewCacheEntry(2025, 1, raw, now)
	gt.Equal(t, now.UnixMilli(), entry.Timestamp)
	gt.Equal(t, 36*time.Hour, entry.Age(now.Add(36*time.Hour)))

	data, err := json.Marshal(entry)
	gt.NoError(t, err)
	for _, key := range []string{`"payload":{"response":{}}`, `"status":200`, `"statusText":"OK"`, `"timestamp":`, `"year":2025`, `"page":1`} {
		gt.S(t, string(data)).Contains(key)
	}

	gt.Equal(t, raw, entry.Response())
}
