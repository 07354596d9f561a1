package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 1. fn内通过ctx使用的Repository都在同一事务中执行
// 2. fn返回error时ROLLBACK,返回nil时COMMIT
// 3. opts可指定隔离级别(如sql.LevelSerializable)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    rows, err := bookRepo.LockRatings(ctx, isbn13)
//	    ...
//	    _, err = bookRepo.UpdateRatings(ctx, isbn13, rating)
//	    return err
//	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

// conn 返回ctx中的事务DB,没有则返回连接池DB
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
