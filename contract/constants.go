package contract

// -----------------------------------------------------------------------------
// Governance Thresholds
// -----------------------------------------------------------------------------

const (
	// MultisigThreshold is the amount (lamports) at or above which a proposal
	// needs RequiredApprovals distinct admin approvals.
	MultisigThreshold uint64 = 1_000_000_000_000
	// RequiredApprovals is the number of admin sign-offs a high value
	// proposal needs.
	RequiredApprovals = 2
	// MinVotes is the total token weight a proposal needs by the end of its
	// window to finalize instead of being rejected.
	MinVotes uint64 = 100
	// VotingPeriodSeconds is the length of the voting window (7 days).
	VotingPeriodSeconds int64 = 7 * 24 * 60 * 60
)

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// AdminCount is the fixed size of the admin registry.
	AdminCount = 3
	// MaxTitleLength limits the proposal title in bytes.
	MaxTitleLength = 50
	// MaxDescriptionLength limits the proposal description in bytes.
	MaxDescriptionLength = 200
)

// -----------------------------------------------------------------------------
// Address Seeds
// -----------------------------------------------------------------------------

var (
	seedConfig      = []byte("config")
	seedUserProfile = []byte("user_profile")
	seedProposal    = []byte("proposal")
	seedVote        = []byte("vote")
	seedVault       = []byte("vault")
	seedClock       = []byte("clock")
	seedTx          = []byte("tx")
)

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

const (
	ActionInitializeAdmin  = "initialize_admin"
	ActionTransferAdmin    = "transfer_admin"
	ActionInitializeUser   = "initialize_user"
	ActionCreateProposal   = "create_proposal"
	ActionUpdateProposal   = "update_proposal"
	ActionVoteOnProposal   = "vote_on_proposal"
	ActionRejectProposal   = "reject_proposal"
	ActionApproveFunding   = "approve_funding"
	ActionFinalizeProposal = "finalize_proposal"
	ActionInitializeVault  = "initialize_vault"
	ActionDepositToVault   = "deposit_to_vault"
	ActionClaimFunds       = "claim_funds"
)
