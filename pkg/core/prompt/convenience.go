package prompt

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	CommentaryDealReview string
}{
	CommentaryDealReview: "commentary.deal_review",
}
