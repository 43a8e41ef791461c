package dtos

type EmailSettingsRequest struct {
	FromName  string `json:"from_name"`
	ReplyTo   string `json:"reply_to" binding:"omitempty,email" msg:"Reply-to must be a valid email"`
	Signature string `json:"signature"`
	AutoSend  bool   `json:"auto_send"`
}
