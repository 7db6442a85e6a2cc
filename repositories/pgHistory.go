package repositories

import (
	"vita-server/db"
	"vita-server/entities"
)

type historyPgRepository struct {
	db db.Database
}

func NewHistoryPgRepository(database db.Database) HistoryRepository {
	return &historyPgRepository{db: database}
}

// Append inserts a new entry and silently drops the oldest rows once the
// per-user per-category list exceeds the cap.
func (r *historyPgRepository) Append(entry *entities.HistoryEntry) error {
	gdb := r.db.GetDB()
	if err := gdb.Create(entry).Error; err != nil {
		return err
	}

	var count int64
	if err := gdb.Model(&entities.HistoryEntry{}).
		Where("username = ? AND category = ?", entry.Username, entry.Category).
		Count(&count).Error; err != nil {
		return err
	}
	if count <= entities.MaxHistoryPerCategory {
		return nil
	}

	var stale []entities.HistoryEntry
	if err := gdb.Where("username = ? AND category = ?", entry.Username, entry.Category).
		Order("timestamp ASC").
		Limit(int(count) - entities.MaxHistoryPerCategory).
		Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	ids := make([]string, 0, len(stale))
	for _, e := range stale {
		ids = append(ids, e.ID)
	}
	return gdb.Where("id IN ?", ids).Delete(&entities.HistoryEntry{}).Error
}

func (r *historyPgRepository) GetByUser(username string) ([]entities.HistoryEntry, error) {
	var entries []entities.HistoryEntry
	err := r.db.GetDB().Where("username = ?", username).
		Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

func (r *historyPgRepository) GetByUserCategory(username, category string) ([]entities.HistoryEntry, error) {
	var entries []entities.HistoryEntry
	err := r.db.GetDB().Where("username = ? AND category = ?", username, category).
		Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

func (r *historyPgRepository) Clear(username, category string) error {
	return r.db.GetDB().Where("username = ? AND category = ?", username, category).
		Delete(&entities.HistoryEntry{}).Error
}

func (r *historyPgRepository) HasImageHash(username, category, hash string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.HistoryEntry{}).
		Where("username = ? AND category = ? AND image_hash = ?", username, category, hash).
		Count(&count).Error
	return count > 0, err
}

func (r *historyPgRepository) CountByCategory(username string) (map[string]int, error) {
	type row struct {
		Category string
		N        int
	}
	var rows []row
	err := r.db.GetDB().Model(&entities.HistoryEntry{}).
		Select("category, COUNT(*) as n").
		Where("username = ?", username).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, rw := range rows {
		counts[rw.Category] = rw.N
	}
	return counts, nil
}
