package models

type RebateStatus string

const (
	RebateStatusDraft             RebateStatus = "Draft"
	RebateStatusPending           RebateStatus = "Pending"
	RebateStatusApproved          RebateStatus = "Approved"
	RebateStatusRejected          RebateStatus = "Rejected"
	RebateStatusRevisionRequested RebateStatus = "Revision Requested"
	RebateStatusDisbursed         RebateStatus = "Disbursed"
)

// IsOpen reports whether a reviewer decision is still possible. A disbursed
// application is settled: the payment has left, so no verdict can change it.
func (s RebateStatus) IsOpen() bool {
	return s != RebateStatusDisbursed
}

type DecisionAction string

const (
	DecisionApprove         DecisionAction = "Approve"
	DecisionReject          DecisionAction = "Reject"
	DecisionRequestRevision DecisionAction = "Request revision"
)

// Status returns the rebate status a decision transitions to.
func (a DecisionAction) Status() RebateStatus {
	switch a {
	case DecisionApprove:
		return RebateStatusApproved
	case DecisionReject:
		return RebateStatusRejected
	case DecisionRequestRevision:
		return RebateStatusRevisionRequested
	}
	return ""
}

type ListStatusFilter string

const (
	ListFilterAll                 ListStatusFilter = "all"
	ListFilterDisbursed           ListStatusFilter = "disbursed"
	ListFilterPendingDisbursement ListStatusFilter = "pending_disbursement"
	ListFilterRejected            ListStatusFilter = "rejected"
	ListFilterPending             ListStatusFilter = "pending"
)

type SponsorFilter string

const (
	SponsorFilterAll      SponsorFilter = "all"
	SponsorFilterPending  SponsorFilter = "pending"
	SponsorFilterApproved SponsorFilter = "approved"
)
