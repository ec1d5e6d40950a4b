package assign

import (
	"strings"

	"crm-backend/lib/access/policy"
	"crm-backend/models"

	"github.com/pkg/errors"
)

// SuggestLimit ограничивает число подсказок по имени.
const SuggestLimit = 5

var ErrNotFound = errors.New("подходящий исполнитель в отделе не найден")

// Candidate это пользователь, рассматриваемый как исполнитель заявки.
type Candidate struct {
	ID           string
	FullName     string
	Role         models.UserRole
	DepartmentID string
}

// Merge объединяет основной и резервный списки кандидатов.
// Дубликаты по id разрешаются в пользу основного списка.
func Merge(primary, fallback []Candidate) []Candidate {
	merged := make([]Candidate, 0, len(primary)+len(fallback))
	seen := map[string]bool{}
	for _, candidate := range primary {
		if candidate.ID == "" || seen[candidate.ID] {
			continue
		}
		seen[candidate.ID] = true
		merged = append(merged, candidate)
	}
	for _, candidate := range fallback {
		if candidate.ID == "" || seen[candidate.ID] {
			continue
		}
		seen[candidate.ID] = true
		merged = append(merged, candidate)
	}
	return merged
}

// Suggest подбирает кандидатов по подстроке имени без учёта регистра.
// Назначаемыми считаются только роли из policy.AssignableRoles.
func Suggest(query string, pool []Candidate) []Candidate {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	result := make([]Candidate, 0, SuggestLimit)
	for _, candidate := range pool {
		if !strings.Contains(strings.ToLower(candidate.FullName), query) {
			continue
		}
		if !policy.IsAssignable(candidate.Role) {
			continue
		}
		result = append(result, candidate)
		if len(result) == SuggestLimit {
			break
		}
	}
	return result
}

// ResolveByName ищет кандидата по имени. Точное совпадение без учёта
// регистра предпочитается, иначе берётся первая подсказка.
func ResolveByName(name string, pool []Candidate) (Candidate, bool) {
	suggestions := Suggest(name, pool)
	nameLower := strings.ToLower(strings.TrimSpace(name))
	for _, candidate := range suggestions {
		if strings.ToLower(candidate.FullName) == nameLower {
			return candidate, true
		}
	}
	if len(suggestions) > 0 {
		return suggestions[0], true
	}
	return Candidate{}, false
}

// RosterProvider отдаёт состав отдела из хранилища.
type RosterProvider interface {
	DepartmentUsers(workspaceID, departmentID string) ([]Candidate, error)
}

// Resolver разрешает имя в кандидата поверх двухуровневого пула:
// основной уровень это состав отдела, резервный это более широкий
// список пользователей workspace, полученный ранее.
type Resolver struct {
	roster   RosterProvider
	fallback []Candidate
	loaded   map[string][]Candidate
}

func NewResolver(roster RosterProvider, fallback []Candidate) *Resolver {
	return &Resolver{
		roster:   roster,
		fallback: fallback,
		loaded:   map[string][]Candidate{},
	}
}

func (r *Resolver) fallbackFor(departmentID string) []Candidate {
	result := make([]Candidate, 0, len(r.fallback))
	for _, candidate := range r.fallback {
		if candidate.DepartmentID == departmentID {
			result = append(result, candidate)
		}
	}
	return result
}

// Pool возвращает объединённый пул кандидатов отдела. Состав отдела
// берётся из кэша, без загрузки при его отсутствии.
func (r *Resolver) Pool(departmentID string) []Candidate {
	return Merge(r.loaded[departmentID], r.fallbackFor(departmentID))
}

// Resolve ищет кандидата по имени. Если состав отдела ещё не загружался,
// он догружается один раз перед тем, как признать поиск неудачным.
func (r *Resolver) Resolve(workspaceID, departmentID, name string) (Candidate, error) {
	if candidate, ok := ResolveByName(name, r.Pool(departmentID)); ok {
		return candidate, nil
	}
	if _, fetched := r.loaded[departmentID]; !fetched && r.roster != nil {
		users, err := r.roster.DepartmentUsers(workspaceID, departmentID)
		if err != nil {
			return Candidate{}, errors.Wrap(err, "ошибка получения состава отдела")
		}
		if users == nil {
			users = []Candidate{}
		}
		r.loaded[departmentID] = users
		if candidate, ok := ResolveByName(name, r.Pool(departmentID)); ok {
			return candidate, nil
		}
	}
	return Candidate{}, ErrNotFound
}
