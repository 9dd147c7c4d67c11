package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/usecase"
)

func raw(body string) *model.RawResponse {
	return &model.RawResponse{Data: json.RawMessage(body), Status: 200, StatusText: "OK"}
}

func TestIsStructurallyValid(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want bool
	}{
		{"valid", `{"response":{"header":{"resultCode":"00"},"body":{"items":[]}}}`, true},
		{"body without items", `{"response":{"body":{}}}`, true},
		{"missing body", `{"response":{"header":{"resultCode":"00"}}}`, false},
		{"null body", `{"response":{"body":null}}`, false},
		{"missing response", `{}`, false},
		{"array payload", `[]`, false},
		{"xml payload", `<OpenAPI_ServiceResponse/>`, false},
		{"empty payload", ``, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, tc.want, usecase.IsStructurallyValid(raw(tc.body)))
		})
	}

	gt.False(t, usecase.IsStructurallyValid(nil))
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens in order and drops unsuccessful", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":[{"sn":1,"issueDate":"2024-12-20","issueTime":"10:00","districtName":"A"}]}}}`),
			raw(`{"response":{"header":{"resultCode":"22","resultMsg":"LIMITED"},"body":{"items":[{"sn":9,"issueDate":"2025-01-02","issueTime":"10:00","districtName":"Z"}]}}}`),
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":[{"sn":"2","issueDate":"2025-01-02","issueTime":"11:00","districtName":"B"},{"sn":3,"issueDate":"2025-01-03","issueTime":"12:00","districtName":"C"}]}}}`),
		}

		items, err := usecase.Aggregate(ctx, responses)
		gt.NoError(t, err)
		gt.Equal(t, []int64{1, 2, 3}, sns(items))
	})

	t.Run("absent or non-array items become empty", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{"header":{"resultCode":"00"},"body":{}}}`),
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":null}}}`),
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":"none"}}}`),
		}

		items, err := usecase.Aggregate(ctx, responses)
		gt.NoError(t, err)
		gt.A(t, items).Length(0)
	})

	t.Run("malformed records are dropped", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":[
				{"sn":1,"issueDate":"2025-01-02","issueTime":"10:00","districtName":"A"},
				{"sn":2,"issueDate":"","issueTime":"10:00","districtName":"A"},
				{"sn":3,"issueDate":"2025-01-02","issueTime":"10:00","districtName":"A","clearDate":"2025-01-02","clearTime":"","clearVal":""},
				{"sn":4,"issueDate":"2025-01-02","issueTime":"10:00","districtName":"A","clearDate":"2025-01-02","clearTime":"18:00","clearVal":"40"},
				"garbage"
			]}}}`),
		}

		items, err := usecase.Aggregate(ctx, responses)
		gt.NoError(t, err)
		gt.Equal(t, []int64{1, 4}, sns(items))
	})

	t.Run("all invalid is an error", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{}}`),
			raw(`not json`),
		}

		_, err := usecase.Aggregate(ctx, responses)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidStructure))
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidStructure))
		gt.Equal(t, "invalid API response structure.", model.Describe(err))
	})

	t.Run("some invalid is not an error", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{}}`),
			raw(`{"response":{"header":{"resultCode":"00"},"body":{"items":[]}}}`),
		}

		items, err := usecase.Aggregate(ctx, responses)
		gt.NoError(t, err)
		gt.A(t, items).Length(0)
	})

	t.Run("valid but unsuccessful everywhere is empty", func(t *testing.T) {
		responses := []*model.RawResponse{
			raw(`{"response":{"header":{"resultCode":"30"},"body":{"items":[]}}}`),
		}

		items, err := usecase.Aggregate(ctx, responses)
		gt.NoError(t, err)
		gt.A(t, items).Length(0)
	})
}
