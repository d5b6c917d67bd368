package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{URI: "mongodb://db:27017", MaxPoolSize: 40, MinPoolSize: 4})

	require.NotNil(t, opts.AppName)
	assert.Equal(t, "storefront", *opts.AppName)
	require.NotNil(t, opts.MaxPoolSize)
	assert.EqualValues(t, 40, *opts.MaxPoolSize)
	require.NotNil(t, opts.MinPoolSize)
	assert.EqualValues(t, 4, *opts.MinPoolSize)
	assert.Equal(t, []string{"db:27017"}, opts.Hosts)
}

func TestClientOptions_DriverPoolDefaults(t *testing.T) {
	opts := clientOptions(Config{URI: "mongodb://db:27017"})

	assert.Nil(t, opts.MaxPoolSize)
	assert.Nil(t, opts.MinPoolSize)
}

func TestConnect_RequiresDatabase(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "mongodb://db:27017"})
	assert.ErrorContains(t, err, "database name is empty")
}
