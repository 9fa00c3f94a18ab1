package httputils

import (
	"net/http"

	"boscoin.io/agora/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code: http.StatusConflict,
		errors.StorageCoreError.Code:           http.StatusInternalServerError,

		errors.MaximumBalanceReached.Code:   http.StatusBadRequest,
		errors.AccountBalanceUnderZero.Code: http.StatusBadRequest,
		errors.AccountAlreadyExists.Code:    http.StatusConflict,
		errors.AccountDoesNotExist.Code:     http.StatusNotFound,
		errors.SettingDoesNotExist.Code:     http.StatusNotFound,

		errors.InsufficientStake.Code:     http.StatusBadRequest,
		errors.InvalidTarget.Code:         http.StatusBadRequest,
		errors.InvalidWindow.Code:         http.StatusBadRequest,
		errors.TooEarly.Code:              http.StatusBadRequest,
		errors.PhaseClosed.Code:           http.StatusBadRequest,
		errors.ZeroStake.Code:             http.StatusBadRequest,
		errors.InvalidTransition.Code:     http.StatusBadRequest,
		errors.DependencyUnavailable.Code: http.StatusServiceUnavailable,
		errors.Conflict.Code:              http.StatusConflict,

		errors.ProposalNotFound.Code:   http.StatusNotFound,
		errors.ReferendumNotFound.Code: http.StatusNotFound,

		errors.InvalidVotingThresholdPolicy.Code: http.StatusBadRequest,
		errors.InvalidPhaseDuration.Code:         http.StatusBadRequest,
		errors.InvalidVote.Code:                  http.StatusBadRequest,
		errors.InvalidProposalType.Code:          http.StatusBadRequest,
		errors.InvalidMessage.Code:               http.StatusBadRequest,
		errors.BadPublicAddress.Code:             http.StatusBadRequest,

		errors.InvalidQueryString.Code:      http.StatusBadRequest,
		errors.BadRequestParameter.Code:     http.StatusBadRequest,
		errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
