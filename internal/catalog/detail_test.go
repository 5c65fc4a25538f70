package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity(t *testing.T) {
	q := NewQuantity(0)
	assert.Equal(t, Quantity(1), q)
	assert.False(t, q.CanDecrement())

	q = q.Add(-1)
	assert.Equal(t, Quantity(1), q, "quantity never drops below one")

	q = q.Add(1).Add(1)
	assert.Equal(t, Quantity(3), q)
	assert.True(t, q.CanDecrement())
	assert.InDelta(t, 32.97, q.Total(10.99), 0.0001)

	assert.Equal(t, Quantity(1), NewQuantity(-5))
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in      string
		want    Tab
		wantErr bool
	}{
		{in: "", want: TabDescription},
		{in: "description", want: TabDescription},
		{in: "Details", want: TabDetails},
		{in: "reviews", want: TabReviews},
		{in: "2", want: TabReviews},
		{in: "3", wantErr: true},
		{in: "specs", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTab(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTab_Content(t *testing.T) {
	p := &Product{
		ID:          7,
		Title:       "White Gold Plated Princess",
		Description: "Classic Created Wedding Engagement Solitaire Diamond Promise Ring",
		Category:    "jewelery",
		Rating:      &Rating{Rate: 3, Count: 400},
	}

	desc := TabDescription.Content(p)
	assert.Equal(t, p.Description, desc.Body)

	details := TabDetails.Content(p)
	assert.Contains(t, details.Fields, Field{Label: "Product ID", Value: "#7"})
	assert.Contains(t, details.Fields, Field{Label: "Availability", Value: "In stock"})
	assert.Contains(t, details.Fields, Field{Label: "Rating", Value: "3.0"})

	reviews := TabReviews.Content(p)
	assert.Contains(t, reviews.Fields, Field{Label: "Based on", Value: "400 reviews"})
}

func TestTab_ContentWithoutRating(t *testing.T) {
	p := &Product{ID: 1, Title: "Plain"}

	reviews := TabReviews.Content(p)
	assert.Contains(t, reviews.Fields, Field{Label: "Average", Value: "0.0"})
	assert.Contains(t, reviews.Fields, Field{Label: "Based on", Value: "0 reviews"})
	assert.Equal(t, "reviews", TabReviews.String())
}
