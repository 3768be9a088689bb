package transport

type AskRequest struct {
	Question string `json:"question" validate:"max=2000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
