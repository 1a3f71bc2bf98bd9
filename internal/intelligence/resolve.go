package intelligence

import (
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
)

// ResolveTypeByName resolves a user-supplied leave-type name against the
// catalog by case-insensitive substring containment in either direction:
// the name may abbreviate the description ("sick" -> "Sick Leave") or
// embed it ("paid sick leave" -> "Sick Leave"). The first catalog-order
// match wins; containment is deliberately not upgraded to fuzzy matching.
func ResolveTypeByName(catalog []domain.LeaveType, name string) (domain.LeaveType, bool) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return domain.LeaveType{}, false
	}
	for _, lt := range catalog {
		desc := strings.ToUpper(strings.TrimSpace(lt.Description))
		if desc == "" {
			continue
		}
		if strings.Contains(desc, needle) || strings.Contains(needle, desc) {
			return lt, true
		}
	}
	return domain.LeaveType{}, false
}

// ResolveTypeContaining resolves a history record's free-text type
// description against the catalog, matching only when the record text is
// contained in the catalog description.
func ResolveTypeContaining(catalog []domain.LeaveType, recordDesc string) (domain.LeaveType, bool) {
	needle := strings.ToLower(strings.TrimSpace(recordDesc))
	if needle == "" {
		return domain.LeaveType{}, false
	}
	for _, lt := range catalog {
		if strings.Contains(strings.ToLower(lt.Description), needle) {
			return lt, true
		}
	}
	return domain.LeaveType{}, false
}

// typeMentioned finds the first catalog entry whose full description
// appears verbatim (case-insensitively) inside the utterance.
func typeMentioned(catalog []domain.LeaveType, lower string) (domain.LeaveType, bool) {
	for _, lt := range catalog {
		desc := strings.ToLower(lt.Description)
		if desc != "" && strings.Contains(lower, desc) {
			return lt, true
		}
	}
	return domain.LeaveType{}, false
}
