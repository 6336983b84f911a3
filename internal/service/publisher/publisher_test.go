package publisher

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newFakeServer(t *testing.T) (*pstest.Server, []option.ClientOption) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, []option.ClientOption{option.WithGRPCConn(conn)}
}

func TestPubSub_Publish(t *testing.T) {
	ctx := context.Background()
	srv, opts := newFakeServer(t)

	admin, err := pubsub.NewClient(ctx, "test-project", opts...)
	require.NoError(t, err)
	defer admin.Close()
	_, err = admin.CreateTopic(ctx, "negative-ratings")
	require.NoError(t, err)

	p, err := NewPubSub(ctx, "test-project", "negative-ratings", opts...)
	require.NoError(t, err)
	defer p.Close()

	id, err := p.Publish(ctx, []byte(`{"rating_id":7}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, `{"rating_id":7}`, string(msgs[0].Data))
	assert.Equal(t, id, msgs[0].ID)
}

func TestPubSub_PublishMissingTopic(t *testing.T) {
	ctx := context.Background()
	_, opts := newFakeServer(t)

	p, err := NewPubSub(ctx, "test-project", "does-not-exist", opts...)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Publish(ctx, []byte(`{}`))
	assert.Error(t, err)
}

func TestLog_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLog(zap.New(core), "negative-ratings")

	id, err := l.Publish(context.Background(), []byte(`{"rating_id":1}`))
	assert.NoError(t, err)
	assert.Empty(t, id)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "negative-ratings", logs.All()[0].ContextMap()["topic"])
}
