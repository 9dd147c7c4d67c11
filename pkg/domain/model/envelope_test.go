package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		env := model.DecodeEnvelope(&model.RawResponse{Data: json.RawMessage(
			`{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL_CODE"},"body":{"totalCount":"1","pageNo":"1","numOfRows":"100","items":[{"sn":1,"issueDate":"2025-01-10","issueTime":"09:00"}]}}}`,
		)})
		gt.True(t, env.HasBody())
		gt.True(t, env.IsSuccess())
		gt.A(t, env.Records()).Length(1)
	})

	t.Run("failure code", func(t *testing.T) {
		env := model.DecodeEnvelope(&model.RawResponse{Data: json.RawMessage(
			`{"response":{"header":{"resultCode":"03","resultMsg":"NODATA_ERROR"},"body":{"items":[]}}}`,
		)})
		gt.True(t, env.HasBody())
		gt.False(t, env.IsSuccess())
	})

	t.Run("not an object", func(t *testing.T) {
		for _, data := range []string{`[]`, `"text"`, `<xml/>`, ``, `{broken`} {
			env := model.DecodeEnvelope(&model.RawResponse{Data: json.RawMessage(data)})
			gt.Nil(t, env)
			gt.False(t, env.HasBody())
			gt.False(t, env.IsSuccess())
			gt.A(t, env.Records()).Length(0)
		}
	})

	t.Run("nil response", func(t *testing.T) {
		gt.Nil(t, model.DecodeEnvelope(nil))
	})
}

func TestAlertItems(t *testing.T) {
	t.Run("drops undecodable and invalid elements", func(t *testing.T) {
		var items model.AlertItems
		gt.NoError(t, json.Unmarshal([]byte(`[
			{"sn":1,"issueDate":"2025-01-10","issueTime":"09:00"},
			{"sn":"x","issueDate":"2025-01-10","issueTime":"09:00"},
			{"sn":3,"issueDate":"2025-01-10"},
			42
		]`), &items))
		gt.A(t, items.Records).Length(1)
		gt.Equal(t, 3, items.Dropped)
	})

	t.Run("non-array is empty", func(t *testing.T) {
		for _, data := range []string{`null`, `{}`, `"none"`, `0`} {
			var items model.AlertItems
			gt.NoError(t, json.Unmarshal([]byte(data), &items))
			gt.A(t, items.Records).Length(0)
		}
	})

	t.Run("marshal", func(t *testing.T) {
		out, err := json.Marshal(model.AlertItems{})
		gt.NoError(t, err)
		gt.Equal(t, "[]", string(out))
	})
}
