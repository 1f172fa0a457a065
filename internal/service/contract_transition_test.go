package service

import (
	"testing"

	"github.com/drm-next/internal/constants"
)

func TestContractTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to string }{
		{constants.ContractStatusDraft, constants.ContractStatusPendingApproval},
		{constants.ContractStatusDraft, constants.ContractStatusApproved},
		{constants.ContractStatusDraft, constants.ContractStatusCancelled},
		{constants.ContractStatusPendingApproval, constants.ContractStatusApproved},
		{constants.ContractStatusPendingApproval, constants.ContractStatusDraft},
		{constants.ContractStatusApproved, constants.ContractStatusSigned},
		{constants.ContractStatusSigned, constants.ContractStatusInProgress},
		{constants.ContractStatusInProgress, constants.ContractStatusCompleted},
		{constants.ContractStatusInProgress, constants.ContractStatusCancelled},
	}
	for _, tc := range allowed {
		if !transitionAllowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{constants.ContractStatusDraft, constants.ContractStatusSigned},
		{constants.ContractStatusDraft, constants.ContractStatusCompleted},
		{constants.ContractStatusApproved, constants.ContractStatusDraft},
		{constants.ContractStatusSigned, constants.ContractStatusApproved},
		{constants.ContractStatusInProgress, constants.ContractStatusDraft},
	}
	for _, tc := range denied {
		if transitionAllowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestContractTransitionTerminalStates(t *testing.T) {
	targets := []string{
		constants.ContractStatusDraft,
		constants.ContractStatusPendingApproval,
		constants.ContractStatusApproved,
		constants.ContractStatusSigned,
		constants.ContractStatusInProgress,
	}
	for _, to := range targets {
		if transitionAllowed(constants.ContractStatusCompleted, to) {
			t.Fatalf("completed must not transition to %s", to)
		}
		if transitionAllowed(constants.ContractStatusCancelled, to) {
			t.Fatalf("cancelled must not transition to %s", to)
		}
	}
}
