package mysql

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// translateNotFound 把 gorm.ErrRecordNotFound 统一成 myErrors.ErrRepoNotFound
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return myErrors.ErrRepoNotFound
	}
	return err
}

// forUpdate 事务内读-改-写时加行锁；SQLite 方言会忽略该子句
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// monthOf 取日期列月份的 SQL 表达式。SQLite 没有 MONTH()，按 UTC 计算
func monthOf(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%m', " + column + ") AS INTEGER)"
	}
	return "MONTH(" + column + ")"
}
