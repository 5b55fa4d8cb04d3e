package raft

const (
	ErrCodeRaftGroupDeleted = 601 + iota
	ErrCodeGroupNotFound
)

var (
	ErrRaftGroupDeleted = newError(ErrCodeRaftGroupDeleted, "raft group has been deleted")
	ErrGroupNotFound    = newError(ErrCodeGroupNotFound, "group not found")
)

// Error is a Group-level failure, returned by Propose/MemberChange once a
// deployment's concrete Group detects the proposed group no longer exists
// on this node (deleted, or never started).
type Error struct {
	Code uint32
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(code uint32, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}
