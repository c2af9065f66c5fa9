package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"comment-analytics/models"
)

const insertBatchSize = 500

// Store mirrors the loaded comments table into SQLite for filtered queries.
type Store struct {
	db  *gorm.DB
	log *logrus.Logger
}

func Open(path string, log *logrus.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.CommentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.WithField("path", path).Info("Database connected successfully")
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ReplaceSnapshot swaps the stored rows for the rows of table in one
// transaction.
func (s *Store) ReplaceSnapshot(table *models.Table) error {
	records := make([]models.CommentRecord, table.Len())
	for i := 0; i < table.Len(); i++ {
		records[i] = models.NewCommentRecord(i, table.Comments[i])
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CommentRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.log.WithField("rows", len(records)).Info("Snapshot stored")
	return nil
}

// Count returns the number of stored rows.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.CommentRecord{}).Count(&n).Error
	return n, err
}
