package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProductRequest_NullVersusAbsent(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "Absent", body: `{}`},
		{name: "Explicit null", body: `{"processor":null}`, wantSet: true},
		{name: "Value", body: `{"processor":"M3"}`, wantSet: true, wantValue: strPtr("M3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateProductRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.Processor.Set)
			assert.Equal(t, tt.wantValue, req.Processor.Value)
			assert.False(t, req.Memory.Set)
		})
	}
}

func TestNullable_RejectsWrongType(t *testing.T) {
	var req UpdateProductRequest
	err := json.Unmarshal([]byte(`{"rating_count":"many"}`), &req)
	assert.Error(t, err)
}

func TestProductChangeSet_ToMap(t *testing.T) {
	brandID := uuid.New()
	price := 10.0
	release := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		changes ProductChangeSet
		want    map[string]any
	}{
		{name: "Empty", changes: ProductChangeSet{}, want: map[string]any{}},
		{
			name:    "Required columns",
			changes: ProductChangeSet{BrandID: &brandID, Price: &price},
			want:    map[string]any{"brand_id": brandID, "price": 10.0},
		},
		{
			name: "Optional columns cleared",
			changes: ProductChangeSet{
				Processor:     Null[string](),
				ReleaseDate:   Null[time.Time](),
				AverageRating: Null[float64](),
			},
			want: map[string]any{"processor": nil, "release_date": nil, "average_rating": nil},
		},
		{
			name: "Optional columns written",
			changes: ProductChangeSet{
				Memory:      NullableOf("16GB"),
				ReleaseDate: NullableOf(release),
				RatingCount: NullableOf(3),
			},
			want: map[string]any{"memory": "16GB", "release_date": release, "rating_count": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.changes.ToMap())
			assert.Equal(t, len(tt.want) == 0, tt.changes.IsEmpty())
		})
	}
}

func TestOffsetQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, OffsetQuery{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 20, OffsetQuery{Page: 3, Limit: 10}.Offset())
}

func strPtr(s string) *string { return &s }
