package request

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

func (r CreateReviewRequest) AsUpdate() UpdateReviewRequest {
	return UpdateReviewRequest{Text: &r.Text, Score: &r.Score}
}

type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty" validate:"omitempty,min=1"`
	Score *int    `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r CreateCommentRequest) AsUpdate() UpdateCommentRequest {
	return UpdateCommentRequest{Text: &r.Text}
}

type UpdateCommentRequest struct {
	Text *string `json:"text,omitempty" validate:"omitempty,min=1"`
}
