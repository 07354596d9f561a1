package database

import (
	"time"
)

// BookModel GORM图书模型
// 评分列可为NULL,读取时归一为0
type BookModel struct {
	ID              int64    `gorm:"primaryKey"`
	ISBN13          string   `gorm:"column:isbn13;uniqueIndex:books_isbn13_key;size:13;not null"`
	Authors         string   `gorm:"type:text"`
	PublicationYear int      `gorm:"column:publication_year"`
	OriginalTitle   string   `gorm:"column:original_title;type:text"`
	Title           string   `gorm:"type:text;not null"`
	RatingAvg       *float64 `gorm:"column:rating_avg"`
	RatingCount     *int64   `gorm:"column:rating_count"`
	Rating1Star     *int64   `gorm:"column:rating_1_star"`
	Rating2Star     *int64   `gorm:"column:rating_2_star"`
	Rating3Star     *int64   `gorm:"column:rating_3_star"`
	Rating4Star     *int64   `gorm:"column:rating_4_star"`
	Rating5Star     *int64   `gorm:"column:rating_5_star"`
	ImageURL        string   `gorm:"column:image_url;type:text"`
	ImageSmallURL   string   `gorm:"column:image_small_url;type:text"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ratingColumns 评分查询只读取这五列
var ratingColumns = []string{
	"rating_1_star", "rating_2_star", "rating_3_star", "rating_4_star", "rating_5_star",
}

// AccountModel GORM账号模型
// 唯一索引名与既有库的约束名一致,用于区分用户名/邮箱冲突
type AccountModel struct {
	AccountID   int64     `gorm:"column:account_id;primaryKey"`
	FirstName   string    `gorm:"column:firstname;size:255;not null"`
	LastName    string    `gorm:"column:lastname;size:255;not null"`
	Username    string    `gorm:"column:username;size:255;not null;uniqueIndex:account_username_key"`
	Email       string    `gorm:"column:email;size:255;not null;uniqueIndex:account_email_key"`
	Phone       string    `gorm:"column:phone;size:15;not null"`
	AccountRole int       `gorm:"column:account_role;not null"`
	CreateDate  time.Time `gorm:"column:create_date;autoCreateTime"`
}

// TableName 指定表名
func (AccountModel) TableName() string {
	return "account"
}

// CredentialModel GORM凭证模型
type CredentialModel struct {
	CredentialID int64  `gorm:"column:credential_id;primaryKey"`
	AccountID    int64  `gorm:"column:account_id;not null;index"`
	SaltedHash   string `gorm:"column:salted_hash;size:255;not null"`
	Salt         string `gorm:"column:salt;size:255"`
}

// TableName 指定表名
func (CredentialModel) TableName() string {
	return "account_credential"
}

// MessageModel GORM留言模型
type MessageModel struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"column:name;size:255;not null;uniqueIndex:demo_name_key"`
	Message  string `gorm:"column:message;size:255"`
	Priority int    `gorm:"column:priority"`
}

// TableName 指定表名
func (MessageModel) TableName() string {
	return "demo"
}
