package domain

import "context"

// HighFive представляет "пятюню", полученную пользователем.
// Автор в хранилище не фиксируется — строка несет только получателя.
type HighFive struct {
	ID          int64
	RecipientID int64
}

// HighFiveRepository определяет контракт для работы с хранилищем high fives.
type HighFiveRepository interface {
	// ListByRecipientID возвращает high fives по ID получателя.
	ListByRecipientID(ctx context.Context, userID int64) ([]*HighFive, error)
}
