package domain

import "context"

// Team представляет команду. Участники не встраиваются в структуру:
// связь team -> users разрешается отдельным запросом через членства.
type Team struct {
	ID       int64
	Name     string
	IsActive bool
}

// TeamRepository определяет контракт для работы с хранилищем команд.
type TeamRepository interface {
	// GetByIDs возвращает команды по набору ID. Фильтра по активности
	// здесь нет: точечный запрос team(id) отдает и неактивную команду.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Team, error)
	// ListActive возвращает все активные команды.
	ListActive(ctx context.Context) ([]*Team, error)
}
