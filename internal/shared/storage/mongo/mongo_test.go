package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMongoURI(t *testing.T) {
	assert.True(t, IsMongoURI("mongodb://localhost:27017/resumes"))
	assert.True(t, IsMongoURI("MONGODB+SRV://cluster.example.net/app"))
	assert.False(t, IsMongoURI("postgres://localhost/resumes"))
	assert.False(t, IsMongoURI(""))
}

func TestDatabaseName(t *testing.T) {
	name, err := DatabaseName("mongodb://localhost:27017/resumes?retryWrites=true")
	require.NoError(t, err)
	assert.Equal(t, "resumes", name)

	name, err = DatabaseName("mongodb://localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, name)

	_, err = DatabaseName("mongodb://")
	require.Error(t, err)
}

func TestConnectRejectsInvalidURI(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-uri", DefaultOptions())
	require.Error(t, err)
}

func TestCloseNilClient(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close(context.Background()))
}
