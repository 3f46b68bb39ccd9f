package chat

import "time"

// Conversation is a 1:1 thread between two marketplace users
// (typically a patient and a provider). LastMessage is a denormalized
// preview maintained by the store whenever a message is saved.
type Conversation struct {
	ID          string    `db:"id" json:"id"`
	UserOneID   string    `db:"user_one_id" json:"userOneId"`
	UserTwoID   string    `db:"user_two_id" json:"userTwoId"`
	LastMessage *string   `db:"last_message" json:"lastMessage"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// HasParticipant tells whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil || userID == "" {
		return false
	}
	return c.UserOneID == userID || c.UserTwoID == userID
}

// ParticipantIDs returns both member ids.
func (c *Conversation) ParticipantIDs() []string {
	if c == nil {
		return nil
	}
	return []string{c.UserOneID, c.UserTwoID}
}
