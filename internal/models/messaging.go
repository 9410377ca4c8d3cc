package models

import "time"

// Notification is a message shown to a single user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// MarkRead sets the read flag. Calling it again is a no-op.
func (n *Notification) MarkRead() {
	n.Read = true
}

// SupportMessage is a message between two users, typically a tenant and staff.
type SupportMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	SentAt      time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
	Read        bool      `gorm:"not null" json:"read"`
}

func (SupportMessage) TableName() string { return "support_messages" }

// MarkRead sets the read flag. Calling it again is a no-op.
func (m *SupportMessage) MarkRead() {
	m.Read = true
}
