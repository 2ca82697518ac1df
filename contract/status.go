package contract

import "fmt"

// ProposalStatus captures a proposal's lifecycle.
type ProposalStatus uint8

const (
	StatusPending   ProposalStatus = 0
	StatusApproved  ProposalStatus = 1
	StatusRejected  ProposalStatus = 2
	StatusFinalized ProposalStatus = 3
	StatusClaimed   ProposalStatus = 4
)

// String serializes the status into the names used in events and views.
// Example payload: StatusFinalized.String()
func (s ProposalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusFinalized:
		return "finalized"
	case StatusClaimed:
		return "claimed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

func (s ProposalStatus) valid() bool {
	return s <= StatusClaimed
}

// transition names one guarded operation on a proposal.
type transition string

const (
	opUpdate   transition = "update"
	opVote     transition = "vote"
	opApprove  transition = "approve"
	opReject   transition = "reject"
	opFinalize transition = "finalize"
	opClaim    transition = "claim"
)

// allowedTransitions is the full allow-list: for each operation, the
// statuses it may start from and the statuses it may leave behind.
var allowedTransitions = map[transition]struct {
	from []ProposalStatus
	to   []ProposalStatus
}{
	opUpdate:   {from: []ProposalStatus{StatusPending}, to: []ProposalStatus{StatusPending}},
	opVote:     {from: []ProposalStatus{StatusPending}, to: []ProposalStatus{StatusPending}},
	opApprove:  {from: []ProposalStatus{StatusPending}, to: []ProposalStatus{StatusPending, StatusApproved}},
	opReject:   {from: []ProposalStatus{StatusPending, StatusApproved, StatusFinalized, StatusRejected}, to: []ProposalStatus{StatusRejected}},
	opFinalize: {from: []ProposalStatus{StatusPending}, to: []ProposalStatus{StatusFinalized, StatusRejected}},
	opClaim:    {from: []ProposalStatus{StatusFinalized}, to: []ProposalStatus{StatusClaimed}},
}

func containsStatus(list []ProposalStatus, s ProposalStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// canStart reports whether op may run on a proposal currently in from.
func canStart(op transition, from ProposalStatus) bool {
	rule, ok := allowedTransitions[op]
	return ok && containsStatus(rule.from, from)
}

// checkTransition guards a full from->to move. Operations call it once the
// target status is known and before anything is written.
func checkTransition(op transition, from, to ProposalStatus) error {
	rule, ok := allowedTransitions[op]
	if !ok || !containsStatus(rule.from, from) || !containsStatus(rule.to, to) {
		return fmt.Errorf("%s %s -> %s: %w", op, from, to, ErrInvalidTransition)
	}
	return nil
}
