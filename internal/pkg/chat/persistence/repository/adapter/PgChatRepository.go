package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository persists conversations and messages in Postgres.
// Schema: chat.conversation (id, user_one_id, user_two_id, last_message,
// created_at, updated_at) and chat.message (id, conversation_id,
// sender_id, content, is_read, created_at). Ids and message timestamps
// are generated by the database.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.conversation (user_one_id, user_two_id, created_at, updated_at)
		VALUES ($1::uuid, $2::uuid, $3, $3)
		RETURNING id::text
	`, c.UserOneID, c.UserTwoID, c.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgChatRepository) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_one_id::text, user_two_id::text, last_message, created_at, updated_at
		FROM chat.conversation
		WHERE id = $1::uuid
	`, id).Scan(&c.ID, &c.UserOneID, &c.UserTwoID, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_one_id::text, user_two_id::text, last_message, created_at, updated_at
		FROM chat.conversation
		WHERE user_one_id = $1::uuid OR user_two_id = $1::uuid
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		var c chat.Conversation
		if err := rows.Scan(&c.ID, &c.UserOneID, &c.UserTwoID, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return convs, nil
}

// SaveMessage inserts the message and bumps the conversation's
// denormalized preview in one transaction. The insert fails if the
// conversation id does not exist (FK), which keeps the "conversation
// before message" invariant at the store level.
func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var saved chat.Message
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, content)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, conversation_id::text, sender_id::text, content, is_read, created_at
	`, m.ConversationID, m.SenderID, m.Content).Scan(
		&saved.ID, &saved.ConversationID, &saved.SenderID, &saved.Content, &saved.IsRead, &saved.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message = $2, updated_at = $3
		WHERE id = $1::uuid
	`, saved.ConversationID, saved.Content, saved.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, content, is_read, created_at
		FROM chat.message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID string, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat.conversation
			WHERE id = $1::uuid AND (user_one_id = $2::uuid OR user_two_id = $2::uuid)
		)
	`, conversationID, userID).Scan(&ok)
	return ok, err
}

func (r *PgChatRepository) ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var one, two string
	err := r.pool.QueryRow(ctx, `
		SELECT user_one_id::text, user_two_id::text
		FROM chat.conversation
		WHERE id = $1::uuid
	`, conversationID).Scan(&one, &two)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []string{one, two}, nil
}
