package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestStatusIsAllowChange(t *testing.T) {
	t.Run("любой переход между известными статусами допустим", func(t *testing.T) {
		for _, from := range RequestStatuses {
			for _, to := range RequestStatuses {
				require.True(t, from.IsAllowChange(to), "переход %v -> %v", from, to)
			}
		}
	})
	t.Run("возврат завершённой заявки в работу допустим", func(t *testing.T) {
		require.True(t, RequestStatusDone.IsAllowChange(RequestStatusNew))
		require.True(t, RequestStatusDone.IsAllowChange(RequestStatusInProcess))
	})
	t.Run("переход в неизвестный статус отклоняется", func(t *testing.T) {
		require.False(t, RequestStatusNew.IsAllowChange(RequestStatus("archived")))
		require.False(t, RequestStatusDone.IsAllowChange(RequestStatus("")))
	})
}

func TestParseRequestStatus(t *testing.T) {
	t.Run("регистр и пробелы не учитываются", func(t *testing.T) {
		status, ok := ParseRequestStatus("  In_Process ")
		require.True(t, ok)
		require.Equal(t, RequestStatusInProcess, status)
	})
	t.Run("неизвестный статус не принимается", func(t *testing.T) {
		_, ok := ParseRequestStatus("archived")
		require.False(t, ok)
	})
	t.Run("первый статус списка служит значением по умолчанию", func(t *testing.T) {
		require.Equal(t, RequestStatusNew, RequestStatuses[0])
	})
}

func TestParseRequestPriority(t *testing.T) {
	require.Equal(t, RequestPriorityCritical, ParseRequestPriority("CRITICAL"))
	require.Equal(t, RequestPriorityMedium, ParseRequestPriority(""))
	require.Equal(t, RequestPriorityMedium, ParseRequestPriority("urgent"))
}
