// Package domain defines the persistence models for accounts, questions, and
// answers. These types are mapped with GORM and form the core data layer of
// the question/answer service.
package domain

// AccountID identifies an account. It is assigned by the database on insert
// and never changes afterwards.
type AccountID int64

// QuestionID identifies a question.
type QuestionID int64

// AnswerID identifies an answer.
type AnswerID int64

// Account is a registered user. The ID is zero until the row is persisted.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Email: login name; unique across accounts (ux_accounts_email).
//   - Password: bcrypt hash of the password; never serialized.
type Account struct {
	ID       AccountID `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Email    string    `json:"email"        gorm:"type:varchar(320);not null;uniqueIndex:ux_accounts_email"`
	Password string    `json:"-"            gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "accounts" }

// Question is a question posted by an account.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Title / Content: free text, normalized by the service layer.
//   - Tags: optional labels; nil means "no tags" and persists as NULL.
//   - AccountID: owner; set on creation and never rewritten.
type Question struct {
	ID        QuestionID `json:"id"         gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title"      gorm:"type:varchar(255);not null"`
	Content   string     `json:"content"    gorm:"type:text;not null"`
	Tags      Tags       `json:"tags"       gorm:"type:text"`
	AccountID AccountID  `json:"account_id" gorm:"column:account_id;not null;index:idx_questions_account"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// Answer is a reply to a question.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Content: free text.
//   - QuestionID: the answered question, stored as corresponding_question.
//   - AccountID: owner.
//   - Question: FK association. OnDelete:RESTRICT makes the database refuse
//     to drop a question that still has answers, so answers must go first.
type Answer struct {
	ID         AnswerID   `json:"id"          gorm:"primaryKey;autoIncrement"`
	Content    string     `json:"content"     gorm:"type:text;not null"`
	QuestionID QuestionID `json:"question_id" gorm:"column:corresponding_question;not null;index:idx_answers_question"`
	AccountID  AccountID  `json:"account_id"  gorm:"column:account_id;not null;index:idx_answers_account"`

	Question *Question `json:"-" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "answers" }

// NewQuestion carries the user-supplied fields of a question. It is used for
// both creation and full updates.
type NewQuestion struct {
	Title   string `json:"title"   binding:"required"`
	Content string `json:"content" binding:"required"`
	Tags    Tags   `json:"tags,omitempty"`
}

// NewAnswer carries the user-supplied fields of an answer.
type NewAnswer struct {
	Content    string     `json:"content"     binding:"required"`
	QuestionID QuestionID `json:"question_id" binding:"required"`
}
