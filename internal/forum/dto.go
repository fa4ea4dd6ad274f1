package forum

// createPostRequest is the payload for a new forum post
// @Name CreatePostRequest
type createPostRequest struct {
	Content string `json:"content" validate:"required" example:"Best som tam in town?"`
	Topic   string `json:"topic" validate:"required" example:"food"`
	Title   string `json:"title" example:"Som tam recommendations"`
}

// addReactionRequest records a reaction on a post or topic. Type is limited
// to the six reactions the UI renders.
// @Name AddReactionRequest
type addReactionRequest struct {
	Type    string `json:"type" validate:"required,oneof=like love laugh wow sad angry" example:"love"`
	PostID  string `json:"postId,omitempty" example:"42"`
	TopicID string `json:"topicId,omitempty"`
}
