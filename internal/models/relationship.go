package models

import "time"

// ParentChildRelationship links a parent account to a child account.
// The link is directed and scopes which children a parent's dashboard shows.
type ParentChildRelationship struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parentId"`
	ChildID   int64     `json:"childId"`
	CreatedAt time.Time `json:"createdAt"`
}
