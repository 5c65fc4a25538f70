package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Detail(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)

	require.NoError(t, runProduct(context.Background(), env.opts, "1", 3, "description"))

	out := env.out.String()
	assert.Contains(t, out, "Fjallraven")
	assert.Contains(t, out, "Quantity:  3")
	assert.Contains(t, out, "$329.85")
	assert.Contains(t, out, "[description]")
	assert.Contains(t, out, "walks in the forest")
}

func TestProduct_QuantityClampsToOne(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)

	require.NoError(t, runProduct(context.Background(), env.opts, "2", 0, "description"))
	assert.Contains(t, env.out.String(), "Quantity:  1")
}

func TestProduct_Tabs(t *testing.T) {
	tests := []struct {
		tab  string
		want []string
	}{
		{tab: "details", want: []string{"[details]", "In stock", "#5", "jewelery"}},
		{tab: "reviews", want: []string{"[reviews]", "4.6", "400"}},
		{tab: "2", want: []string{"[reviews]"}},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			env := newTestEnv(t)
			env.loggedIn(t)

			require.NoError(t, runProduct(context.Background(), env.opts, "5", 1, tt.tab))
			for _, want := range tt.want {
				assert.Contains(t, env.out.String(), want)
			}
		})
	}
}

func TestProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)

	err := runProduct(context.Background(), env.opts, "999", 1, "description")
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "Product 999 not found")
}

func TestProduct_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)

	assert.Error(t, runProduct(context.Background(), env.opts, "abc", 1, "description"))
	assert.Error(t, runProduct(context.Background(), env.opts, "-1", 1, "description"))
	assert.Error(t, runProduct(context.Background(), env.opts, "1", 1, "shipping"))
	assert.Zero(t, env.stub.RequestCount())
}

func TestProduct_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	err := runProduct(context.Background(), env.opts, "1", 1, "description")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestImage_OpensProductImage(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)

	var opened string
	env.opts.OpenURL = func(url string) error {
		opened = url
		return nil
	}

	require.NoError(t, runImage(context.Background(), env.opts, "9"))
	assert.Equal(t, "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg", opened)
}

func TestImage_BrowserFailure(t *testing.T) {
	env := newTestEnv(t)
	env.loggedIn(t)
	env.opts.OpenURL = func(string) error { return errors.New("no display") }

	err := runImage(context.Background(), env.opts, "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please visit")
}
