package raft

import "context"

// Group is the consensus handle this core needs out of a raft
// deployment: propose one opaque payload and have it come back through
// the paired StateMachine's Apply once a quorum commits it. raftadapter
// binds catalog.Catalog to exactly this interface; a real multi-node
// deployment supplies the concrete Group (etcd-raft transport, WAL,
// snapshot transfer) wired to its own network and storage layer, which
// is out of scope for this core the same way the query/transport layer
// is (see DESIGN.md).
type Group interface {
	Propose(ctx context.Context, msg *ProposalData) (ProposalResponse, error)
	LeaderTransfer(ctx context.Context, peerID uint64) error
	ReadIndex(ctx context.Context) error
	Truncate(ctx context.Context, index uint64) error
	MemberChange(ctx context.Context, mc *Member) error
	Stat() (*Stat, error)
	Close() error
}
