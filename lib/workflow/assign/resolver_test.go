package assign

import (
	"testing"

	"crm-backend/models"

	"github.com/stretchr/testify/require"
)

func candidate(id, name string, role models.UserRole) Candidate {
	return Candidate{ID: id, FullName: name, Role: role, DepartmentID: "dep-1"}
}

func TestMerge(t *testing.T) {
	primary := []Candidate{candidate("1", "Ivan Petrov", models.UserRoleUser)}
	fallback := []Candidate{
		{ID: "1", FullName: "Stale Name", Role: models.UserRoleUser, DepartmentID: "dep-1"},
		candidate("2", "Anna Orlova", models.UserRoleUser),
	}
	merged := Merge(primary, fallback)
	require.Len(t, merged, 2)
	require.Equal(t, "Ivan Petrov", merged[0].FullName)
	require.Equal(t, "2", merged[1].ID)
}

func TestSuggest(t *testing.T) {
	pool := []Candidate{
		candidate("1", "Jane Doe", models.UserRoleUser),
		candidate("2", "Jane Smith", models.UserRoleUser),
		candidate("3", "Jane Manager", models.UserRoleManager),
		candidate("4", "Janet Brown", models.UserRoleUser),
		candidate("5", "Jane Black", models.UserRoleUser),
		candidate("6", "Jane White", models.UserRoleUser),
		candidate("7", "Jane Green", models.UserRoleUser),
	}

	t.Run(`limit and role filter`, func(t *testing.T) {
		result := Suggest("jane", pool)
		require.Len(t, result, SuggestLimit)
		for _, c := range result {
			require.NotEqual(t, "3", c.ID)
		}
	})
	t.Run(`empty query`, func(t *testing.T) {
		require.Empty(t, Suggest("  ", pool))
	})
	t.Run(`case insensitive`, func(t *testing.T) {
		result := Suggest("SMITH", pool)
		require.Len(t, result, 1)
		require.Equal(t, "2", result[0].ID)
	})
}

func TestResolveByName(t *testing.T) {
	pool := []Candidate{
		candidate("1", "Jane Donovan", models.UserRoleUser),
		candidate("2", "Jane Doe", models.UserRoleUser),
	}

	t.Run(`exact match preferred`, func(t *testing.T) {
		found, ok := ResolveByName("jane doe", pool)
		require.True(t, ok)
		require.Equal(t, "2", found.ID)
	})
	t.Run(`fuzzy fallback`, func(t *testing.T) {
		found, ok := ResolveByName("Jane", pool)
		require.True(t, ok)
		require.Equal(t, "1", found.ID)
	})
	t.Run(`no match`, func(t *testing.T) {
		_, ok := ResolveByName("Bob", pool)
		require.False(t, ok)
	})
}

type rosterStub struct {
	users []Candidate
	calls int
}

func (s *rosterStub) DepartmentUsers(workspaceID, departmentID string) ([]Candidate, error) {
	s.calls++
	return s.users, nil
}

func TestResolver(t *testing.T) {
	t.Run(`lazy roster fetch once`, func(t *testing.T) {
		roster := &rosterStub{users: []Candidate{candidate("1", "Jane Doe", models.UserRoleUser)}}
		resolver := NewResolver(roster, nil)

		found, err := resolver.Resolve("ws", "dep-1", "Jane Doe")
		require.Nil(t, err)
		require.Equal(t, "1", found.ID)
		require.Equal(t, 1, roster.calls)

		_, err = resolver.Resolve("ws", "dep-1", "Nobody")
		require.Equal(t, ErrNotFound, err)
		require.Equal(t, 1, roster.calls)
	})
	t.Run(`fallback pool used before fetch`, func(t *testing.T) {
		roster := &rosterStub{}
		resolver := NewResolver(roster, []Candidate{candidate("9", "Anna Orlova", models.UserRoleUser)})

		found, err := resolver.Resolve("ws", "dep-1", "Anna Orlova")
		require.Nil(t, err)
		require.Equal(t, "9", found.ID)
		require.Equal(t, 0, roster.calls)
	})
	t.Run(`roster wins over fallback`, func(t *testing.T) {
		roster := &rosterStub{users: []Candidate{candidate("9", "Anna Fresh", models.UserRoleUser)}}
		resolver := NewResolver(roster, []Candidate{candidate("9", "Anna Orlova", models.UserRoleUser)})

		found, err := resolver.Resolve("ws", "dep-1", "Anna Fresh")
		require.Nil(t, err)
		require.Equal(t, "Anna Fresh", found.FullName)
		pool := resolver.Pool("dep-1")
		require.Len(t, pool, 1)
	})
}
