package models

// CategoryAll is the default category of a todo. As a list filter it matches every todo.
const CategoryAll = "전체"

// Todo represents a single task owned by a user.
type Todo struct {
	ID        int64  `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	IsDone    bool   `json:"is_done" db:"is_done"`
	Category  string `json:"category" db:"category"`
	UserID    int64  `json:"-" db:"user_id"`
	StartDate Date   `json:"start_date" db:"start_date"`
	Deadline  Date   `json:"deadline" db:"deadline"`
}
