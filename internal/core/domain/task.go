package domain

const TaskPending = "Pending"

// Task is work a mentor assigns to staff in their domain.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Domain      string `json:"domain"`
	AssignedTo  string `json:"assignedTo"`
	UserID      string `json:"userId"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	IsChecked   bool   `json:"isChecked"`
}
