package chatbot

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client), mr
}

func TestRedisRepository_CreateAndGet(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	conv, err := repo.CreateConversation(ctx, "visitor-1", "I need a new website")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RoleAssistant, conv.Messages[0].Role)
	assert.Equal(t, RoleVisitor, conv.Messages[1].Role)

	got, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
	assert.Equal(t, "visitor-1", got.VisitorID)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "I need a new website", got.Messages[1].Content)

	_, err = repo.GetConversation(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRedisRepository_AppendAndUpdate(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	conv, err := repo.CreateConversation(ctx, "visitor-1", "")
	require.NoError(t, err)

	updated, err := repo.AppendMessage(ctx, conv.ID, RoleVisitor, "what do you charge", map[string]string{"budget": "$2k"})
	require.NoError(t, err)
	require.Len(t, updated.Messages, 2)
	assert.Equal(t, "$2k", updated.Messages[1].Metadata["budget"])

	require.NoError(t, repo.SetIntent(ctx, conv.ID, IntentPricing))
	require.NoError(t, repo.MarkLeadQualified(ctx, conv.ID))

	got, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentPricing, got.Intent)
	assert.True(t, got.LeadQualified)

	_, err = repo.AppendMessage(ctx, "no-such-id", RoleVisitor, "hi", nil)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRedisRepository_ConversationTTL(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	conv, err := repo.CreateConversation(ctx, "visitor-1", "")
	require.NoError(t, err)

	ttl := mr.TTL(conversationKey(conv.ID))
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestRedisRepository_ListSkipsExpired(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	expired, err := repo.CreateConversation(ctx, "visitor-1", "")
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	live, err := repo.CreateConversation(ctx, "visitor-2", "")
	require.NoError(t, err)

	conversations, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, live.ID, conversations[0].ID)
	assert.NotEqual(t, expired.ID, conversations[0].ID)
}

func TestRedisRepository_Leads(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	first, err := repo.CreateLead(ctx, "conv-1", VisitorInfo{Name: "Pat"}, QualificationData{BusinessType: "retail"})
	require.NoError(t, err)
	second, err := repo.CreateLead(ctx, "conv-2", VisitorInfo{Name: "Sam"}, QualificationData{})
	require.NoError(t, err)

	assert.Equal(t, LeadStatusNew, first.Status)

	leads, err := repo.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, first.ID, leads[0].ID)
	assert.Equal(t, second.ID, leads[1].ID)
	assert.Equal(t, "Pat", leads[0].VisitorInfo.Name)
	assert.Equal(t, "retail", leads[0].QualificationData.BusinessType)
}
