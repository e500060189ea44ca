package domain

import "time"

type ConversationStore interface {
	Add(chatID int64, turn Turn)
	FreshTurns(chatID int64, limit int, ttl time.Duration) []Turn
	Reset(chatID int64)
}
