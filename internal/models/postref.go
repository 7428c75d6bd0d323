package models

import "fmt"

// PostKind discriminates the three votable post types.
type PostKind string

const (
	KindQuestion PostKind = "question"
	KindAnswer   PostKind = "answer"
	KindComment  PostKind = "comment"
)

// ParsePostKind validates the type tag carried by vote requests.
func ParsePostKind(s string) (PostKind, bool) {
	switch PostKind(s) {
	case KindQuestion, KindAnswer, KindComment:
		return PostKind(s), true
	}
	return "", false
}

// PostRef identifies a single votable post.
type PostRef struct {
	Kind PostKind
	ID   int
}

// ElementID is the DOM id of the post's score element, echoed back to the
// voting client so it can update the right counter in place.
func (r PostRef) ElementID() string {
	return fmt.Sprintf("score_%d_%s", r.ID, r.Kind)
}
