package dto

type LoginRecordedMessage struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}
